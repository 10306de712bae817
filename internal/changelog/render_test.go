package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown_SectionsMode(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 3,
		Sections: []Section{
			{
				Name: "Features",
				Entries: []Entry{
					{Text: "add auth", Scope: "api"},
					{Text: "general cleanup"},
				},
			},
			{
				Name:    "Bug Fixes",
				Entries: []Entry{{Text: "null deref", Scope: "core"}},
			},
		},
	}

	out, err := RenderMarkdownString(res, RenderOptions{Mode: ModeSections})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Changelog\n"))
	assert.Contains(t, out, "\n## Features\n")
	assert.Contains(t, out, "\n### api\n- add auth\n")
	assert.Contains(t, out, "\n### Other\n- general cleanup\n")
	assert.Contains(t, out, "\n## Bug Fixes\n")
	assert.NotContains(t, out, "Generated at", "zero timestamp omits the footer")
}

func TestRenderMarkdown_ScopeOrder(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 3,
		Sections: []Section{{
			Name: "Features",
			Entries: []Entry{
				{Text: "scopeless"},
				{Text: "z work", Scope: "zeta"},
				{Text: "a work", Scope: "alpha"},
			},
		}},
	}

	out, err := RenderMarkdownString(res, RenderOptions{Mode: ModeSections})
	require.NoError(t, err)

	alpha := strings.Index(out, "### alpha")
	zeta := strings.Index(out, "### zeta")
	other := strings.Index(out, "### Other")
	require.True(t, alpha >= 0 && zeta >= 0 && other >= 0)
	assert.Less(t, alpha, zeta)
	assert.Less(t, zeta, other, "Other renders last")
}

func TestRenderMarkdown_ReferencesMode(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 2,
		Sections: []Section{{
			Name: "User Stories",
			Entries: []Entry{
				{Text: "feat: login", Ref: &Reference{Label: "US", Ticket: "10"}},
				{Text: "feat: logout", Ref: &Reference{Label: "US", Ticket: "11"}},
			},
		}},
	}

	tests := map[string]struct {
		baseURL string
		want    string
	}{
		"with base url": {
			baseURL: "https://tracker.example.com/browse/",
			want:    "- [US-10](https://tracker.example.com/browse/10) feat: login\n",
		},
		"without base url": {
			want: "- US-10 feat: login\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := RenderMarkdownString(res, RenderOptions{Mode: ModeReferences, BaseURL: tt.baseURL})
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRenderMarkdown_EscapesEntryText(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 1,
		Sections: []Section{{
			Name:    "Features",
			Entries: []Entry{{Text: "support [brackets] and *stars*"}},
		}},
	}

	out, err := RenderMarkdownString(res, RenderOptions{Mode: ModeSections})
	require.NoError(t, err)
	assert.Contains(t, out, `support \[brackets\] and \*stars\*`)
}

func TestRenderMarkdown_Footer(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total:    1,
		Sections: []Section{{Name: "Features", Entries: []Entry{{Text: "x"}}}},
	}
	ts := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	out, err := RenderMarkdownString(res, RenderOptions{Mode: ModeSections, GeneratedAt: ts})
	require.NoError(t, err)
	assert.Contains(t, out, "_Generated at 2024-06-01T09:30:00Z (1 entries)._")
}

func TestRenderMarkdown_CustomTitle(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total:    1,
		Sections: []Section{{Name: "Features", Entries: []Entry{{Text: "x"}}}},
	}

	out, err := RenderMarkdownString(res, RenderOptions{Title: "Release Notes", Mode: ModeSections})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Release Notes\n"))
}

func TestFormatTerminal_Plain(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 2,
		Sections: []Section{{
			Name: "Features",
			Entries: []Entry{
				{Text: "add auth", Scope: "api"},
				{Text: "cleanup"},
			},
		}},
	}

	var b strings.Builder
	err := FormatTerminal(res, &b, ModeSections, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "Features (2)")
	assert.Contains(t, out, "  api\n    - add auth\n")
	assert.Contains(t, out, "  Other\n    - cleanup\n")
	assert.Contains(t, out, "2 entries across 1 sections")
}

func TestFormatTerminal_ReferencesPlain(t *testing.T) {
	t.Parallel()

	res := &Result{
		Total: 1,
		Sections: []Section{{
			Name:    "Bugs",
			Entries: []Entry{{Text: "fix: crash", Ref: &Reference{Label: "BUG", Ticket: "7"}}},
		}},
	}

	var b strings.Builder
	err := FormatTerminal(res, &b, ModeReferences, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)
	assert.Contains(t, b.String(), "  - BUG-7 fix: crash")
}

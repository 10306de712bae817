package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReferences_Separators(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []Reference
	}{
		"hyphen": {
			text: "implements US-123",
			want: []Reference{{Label: "US", Ticket: "123"}},
		},
		"underscore": {
			text: "implements US_123",
			want: []Reference{{Label: "US", Ticket: "123"}},
		},
		"colon": {
			text: "US: 10 done",
			want: []Reference{{Label: "US", Ticket: "10"}},
		},
		"hash": {
			text: "see US#42",
			want: []Reference{{Label: "US", Ticket: "42"}},
		},
		"whitespace": {
			text: "US 7 shipped",
			want: []Reference{{Label: "US", Ticket: "7"}},
		},
		"case insensitive label": {
			text: "us-99 again",
			want: []Reference{{Label: "US", Ticket: "99"}},
		},
		"multiple references": {
			text: "US-1 plus US-2 in one commit",
			want: []Reference{{Label: "US", Ticket: "1"}, {Label: "US", Ticket: "2"}},
		},
		"alphanumeric ticket": {
			text: "US-12a3",
			want: []Reference{{Label: "US", Ticket: "12a3"}},
		},
		"underscore inside ticket": {
			text: "US-a_1",
			want: []Reference{{Label: "US", Ticket: "a_1"}},
		},
		"no digit means no ticket": {
			text: "US-abc nothing here",
			want: nil,
		},
		"no reference at all": {
			text: "just a message",
			want: nil,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractReferences("US", tt.text, ExtractorOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractReferences_WordBoundary(t *testing.T) {
	t.Parallel()

	// A rule for US must never fire inside a larger word.
	tests := []string{
		"FOCUS-123 is not a user story",
		"BONUS 55 neither",
		"VIRUS#9 no",
	}

	for _, text := range tests {
		got, err := ExtractReferences("US", text, ExtractorOptions{AllowBareTicket: true})
		require.NoError(t, err)
		assert.Empty(t, got, "text %q must not match", text)
	}
}

func TestExtractReferences_BareTicket(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		allowBare bool
		text      string
		want      []Reference
	}{
		"glued digits accepted when enabled": {
			allowBare: true,
			text:      "US123 done",
			want:      []Reference{{Label: "US", Ticket: "123"}},
		},
		"glued digits rejected by default": {
			allowBare: false,
			text:      "US123 done",
			want:      nil,
		},
		"glued letters never match": {
			allowBare: true,
			text:      "USER did things",
			want:      nil,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractReferences("US", tt.text, ExtractorOptions{AllowBareTicket: tt.allowBare})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractReferences_TrailingSeparator(t *testing.T) {
	t.Parallel()

	got, err := ExtractReferences("US", "US-12- next", ExtractorOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Ticket)
}

func TestExtractReferences_EmptyLabel(t *testing.T) {
	t.Parallel()

	_, err := ExtractReferences("  ", "US-1", ExtractorOptions{})
	assert.Error(t, err)
}

func TestNewPrefixMatcher(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pattern   string
		subject   string
		wantMatch bool
		wantText  string
		wantScope string
	}{
		"plain prefix": {
			pattern:   "feat",
			subject:   "feat: add auth",
			wantMatch: true,
			wantText:  "add auth",
		},
		"anchored pattern accepted": {
			pattern:   "^fix",
			subject:   "fix: crash on empty input",
			wantMatch: true,
			wantText:  "crash on empty input",
		},
		"case insensitive": {
			pattern:   "feat",
			subject:   "Feat: shouting works too",
			wantMatch: true,
			wantText:  "shouting works too",
		},
		"scope captured": {
			pattern:   "feat",
			subject:   "feat(api): add auth",
			wantMatch: true,
			wantText:  "add auth",
			wantScope: "api",
		},
		"breaking marker tolerated": {
			pattern:   "feat",
			subject:   "feat(api)!: breaking change",
			wantMatch: true,
			wantText:  "breaking change",
			wantScope: "api",
		},
		"prefix only at start": {
			pattern:   "feat",
			subject:   "chore: feat mentioned later",
			wantMatch: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := NewPrefixMatcher(tt.pattern)
			require.NoError(t, err)

			entries := m.FindMatches(Commit{Subject: tt.subject})
			if !tt.wantMatch {
				assert.Empty(t, entries)
				return
			}
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantText, entries[0].Text)
			assert.Equal(t, tt.wantScope, entries[0].Scope)
			assert.Nil(t, entries[0].Ref)
		})
	}
}

func TestNewPrefixMatcher_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewPrefixMatcher("feat(")
	assert.Error(t, err)

	_, err = NewPrefixMatcher("")
	assert.Error(t, err)
}

func TestCatchAll(t *testing.T) {
	t.Parallel()

	m := CatchAll()

	entries := m.FindMatches(Commit{Subject: "docs: update readme"})
	require.Len(t, entries, 1)
	assert.Equal(t, "update readme", entries[0].Text)

	entries = m.FindMatches(Commit{Subject: "no conventional shape here"})
	require.Len(t, entries, 1)
	assert.Equal(t, "no conventional shape here", entries[0].Text)
	assert.Empty(t, entries[0].Scope)
}

func TestReferenceMatcher_OneEntryPerReference(t *testing.T) {
	t.Parallel()

	m, err := NewReferenceMatcher("US", ExtractorOptions{})
	require.NoError(t, err)

	c := Commit{Subject: "feat: batch work", Body: "covers US-1 and US-2"}
	entries := m.FindMatches(c)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].Ref.Ticket)
	assert.Equal(t, "2", entries[1].Ref.Ticket)
	// Both entries render the full subject.
	assert.Equal(t, "feat: batch work", entries[0].Text)
	assert.Equal(t, "feat: batch work", entries[1].Text)
}

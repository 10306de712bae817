package changelog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// RenderOptions controls markdown rendering of a Result.
type RenderOptions struct {
	// Title is the document heading; defaults to "Changelog".
	Title string
	// Mode selects the entry line shape.
	Mode Mode
	// BaseURL, when set in references mode, turns each ticket into a
	// {BaseURL}/{ticket} link.
	BaseURL string
	// GeneratedAt is the generation timestamp supplied by the caller.
	// The zero value omits the footer, keeping output reproducible.
	GeneratedAt time.Time
}

// markdownEscaper neutralizes the characters that would change entry
// text into markdown structure.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`[`, `\[`,
	`]`, `\]`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
)

// RenderMarkdown writes a Result as a markdown document. Sections render
// in rule order; sections-mode entries are grouped by scope with the
// "Other" bucket last. The function is idempotent: identical input
// produces identical output.
func RenderMarkdown(res *Result, w io.Writer, opts RenderOptions) error {
	title := opts.Title
	if title == "" {
		title = "Changelog"
	}
	if _, err := fmt.Fprintf(w, "# %s\n", title); err != nil {
		return err
	}

	for _, section := range res.Sections {
		if err := renderSection(section, w, opts); err != nil {
			return fmt.Errorf("rendering section %s: %w", section.Name, err)
		}
	}

	if !opts.GeneratedAt.IsZero() {
		if _, err := fmt.Fprintf(w, "\n_Generated at %s (%d entries)._\n",
			opts.GeneratedAt.Format(time.RFC3339), res.Total); err != nil {
			return err
		}
	}
	return nil
}

// RenderMarkdownString is a convenience wrapper that renders to a string.
func RenderMarkdownString(res *Result, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(res, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderSection(section Section, w io.Writer, opts RenderOptions) error {
	if _, err := fmt.Fprintf(w, "\n## %s\n", section.Name); err != nil {
		return err
	}

	if opts.Mode == ModeReferences {
		for _, entry := range section.Entries {
			if _, err := fmt.Fprintf(w, "- %s\n", referenceLine(entry, opts.BaseURL)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, group := range section.ScopeGroups() {
		if _, err := fmt.Fprintf(w, "\n### %s\n", group.Name); err != nil {
			return err
		}
		for _, entry := range group.Entries {
			if _, err := fmt.Fprintf(w, "- %s\n", markdownEscaper.Replace(entry.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}

// referenceLine formats one references-mode entry: the LABEL-ticket tag,
// hyperlinked when a base URL is configured, followed by the subject.
func referenceLine(entry Entry, baseURL string) string {
	text := markdownEscaper.Replace(entry.Text)
	if entry.Ref == nil {
		return text
	}
	tag := entry.Ref.String()
	if baseURL != "" {
		link := strings.TrimRight(baseURL, "/") + "/" + entry.Ref.Ticket
		return fmt.Sprintf("[%s](%s) %s", tag, link, text)
	}
	return fmt.Sprintf("%s %s", tag, text)
}

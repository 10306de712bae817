package changelog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatOptions controls the terminal preview output.
type FormatOptions struct {
	Plain    bool // disable colors and icons
	MaxWidth int  // maximum line width (0 = auto-detect)
}

var (
	sectionColor = color.New(color.FgCyan, color.Bold)
	countColor   = color.New(color.Faint)
	scopeColor   = color.New(color.FgBlue)
	tagColor     = color.New(color.FgYellow)
)

// FormatTerminal writes a Result to the writer with terminal styling:
// colored section headers with entry counts, scope groups in sections
// mode, ticket tags in references mode.
func FormatTerminal(res *Result, w io.Writer, mode Mode, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, section := range res.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatSection(section, w, mode, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", section.Name, err)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d entries across %d sections\n", res.Total, len(res.Sections))
	return err
}

func formatSection(section Section, w io.Writer, mode Mode, opts FormatOptions, width int) error {
	if err := writeSectionHeader(section, w, opts); err != nil {
		return err
	}

	if mode == ModeReferences {
		for _, entry := range section.Entries {
			if err := writeReferenceEntry(entry, w, opts, width); err != nil {
				return err
			}
		}
		return nil
	}

	for _, group := range section.ScopeGroups() {
		if err := writeScopeHeader(group.Name, w, opts); err != nil {
			return err
		}
		for _, entry := range group.Entries {
			if err := writeTextEntry(entry.Text, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSectionHeader(section Section, w io.Writer, opts FormatOptions) error {
	count := fmt.Sprintf("(%d)", len(section.Entries))
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s %s\n", section.Name, count)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", sectionColor.Sprint(section.Name), countColor.Sprint(count))
	return err
}

func writeScopeHeader(name string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "  %s\n", name)
		return err
	}
	_, err := fmt.Fprintf(w, "  %s\n", scopeColor.Sprint(name))
	return err
}

func writeTextEntry(text string, w io.Writer, opts FormatOptions, width int) error {
	_, err := fmt.Fprintf(w, "    - %s\n", truncateText(text, width-6))
	return err
}

func writeReferenceEntry(entry Entry, w io.Writer, opts FormatOptions, width int) error {
	tag := ""
	if entry.Ref != nil {
		tag = entry.Ref.String()
	}
	text := truncateText(entry.Text, width-len(tag)-6)
	if opts.Plain {
		_, err := fmt.Fprintf(w, "  - %s %s\n", tag, text)
		return err
	}
	_, err := fmt.Fprintf(w, "  - %s %s\n", tagColor.Sprint(tag), text)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen < 4 || len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}

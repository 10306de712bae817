package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher finds the section entries a single commit contributes.
// The three variants keep pattern syntax out of the classifier:
// prefix matching against the subject, reference extraction against the
// full text, and the catch-all that claims everything.
type Matcher interface {
	FindMatches(c Commit) []Entry
}

// ExtractorOptions configures reference extraction.
type ExtractorOptions struct {
	// AllowBareTicket accepts a label glued directly to digits (US123).
	// The separated forms are always accepted.
	AllowBareTicket bool
}

// conventionalRe captures the "type(scope): text" subject shape.
// The scope group is empty when the subject has no parenthesized scope.
var conventionalRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)(?:\(([^)]*)\))?!?\s*:\s*(.*)$`)

// NewPrefixMatcher compiles a prefix-anchored, case-insensitive matcher
// for commit subjects. A pattern that is not a usable expression is a
// configuration error, surfaced here at first application.
func NewPrefixMatcher(pattern string) (Matcher, error) {
	trimmed := strings.TrimPrefix(pattern, "^")
	if trimmed == "" {
		return nil, fmt.Errorf("section pattern %q is empty", pattern)
	}
	re, err := regexp.Compile(`(?i)^(?:` + trimmed + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling section pattern %q: %w", pattern, err)
	}
	return &prefixMatcher{re: re}, nil
}

type prefixMatcher struct {
	re *regexp.Regexp
}

func (m *prefixMatcher) FindMatches(c Commit) []Entry {
	if !m.re.MatchString(c.Subject) {
		return nil
	}
	return []Entry{entryFromSubject(c)}
}

// CatchAll returns the matcher that claims every commit. The classifier
// applies it only after no other rule matched.
func CatchAll() Matcher {
	return catchAllMatcher{}
}

type catchAllMatcher struct{}

func (catchAllMatcher) FindMatches(c Commit) []Entry {
	return []Entry{entryFromSubject(c)}
}

// entryFromSubject builds a sections-mode entry: the type prefix is
// stripped and the scope captured when the subject follows the
// conventional shape, otherwise the subject passes through untouched.
func entryFromSubject(c Commit) Entry {
	if g := conventionalRe.FindStringSubmatch(c.Subject); g != nil {
		return Entry{Commit: c, Scope: g[2], Text: strings.TrimSpace(g[3])}
	}
	return Entry{Commit: c, Text: c.Subject}
}

// NewReferenceMatcher builds a matcher that extracts ticket references
// for the given label from a commit's subject and body. Each reference
// becomes its own entry.
func NewReferenceMatcher(label string, opts ExtractorOptions) (Matcher, error) {
	ex, err := newExtractor(label, opts)
	if err != nil {
		return nil, err
	}
	return &referenceMatcher{ex: ex}, nil
}

type referenceMatcher struct {
	ex *extractor
}

func (m *referenceMatcher) FindMatches(c Commit) []Entry {
	refs := m.ex.Extract(c.Text())
	if len(refs) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(refs))
	for i := range refs {
		entries = append(entries, Entry{Commit: c, Text: c.Subject, Ref: &refs[i]})
	}
	return entries
}

// ExtractReferences finds every reference for the given label in text,
// in order of appearance. An empty result is a normal no-match outcome.
func ExtractReferences(label, text string, opts ExtractorOptions) ([]Reference, error) {
	ex, err := newExtractor(label, opts)
	if err != nil {
		return nil, err
	}
	return ex.Extract(text), nil
}

// extractor matches one reference label as a complete word followed by
// a separator and a ticket token containing at least one digit.
type extractor struct {
	label string
	re    *regexp.Regexp
}

func newExtractor(label string, opts ExtractorOptions) (*extractor, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("reference label is empty")
	}

	// \b keeps the label from matching inside a larger word (a rule for
	// US must not fire inside FOCUS). The separated form requires at
	// least one separator character before the ticket; the bare form
	// only accepts a ticket led by a digit, which preserves the word
	// boundary on the right side.
	pat := `(?i)\b` + regexp.QuoteMeta(label) + `(?:[\s_:#-]+([\w-]*\d[\w-]*)`
	if opts.AllowBareTicket {
		pat += `|(\d[\w-]*)`
	}
	pat += `)`

	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("compiling reference label %q: %w", label, err)
	}
	return &extractor{label: label, re: re}, nil
}

// Extract returns all references in text, in order of appearance.
func (e *extractor) Extract(text string) []Reference {
	var refs []Reference
	for _, m := range e.re.FindAllStringSubmatch(text, -1) {
		ticket := m[1]
		if ticket == "" && len(m) > 2 {
			ticket = m[2]
		}
		// The token class is greedy; give trailing separators back to
		// whatever follows.
		ticket = strings.TrimRight(ticket, "-")
		if ticket == "" {
			continue
		}
		refs = append(refs, Reference{Label: e.label, Ticket: ticket})
	}
	return refs
}

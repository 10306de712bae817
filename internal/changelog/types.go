// Package changelog turns a linear git commit history into a structured
// changelog model. It parses sentinel-delimited commit blocks, reconciles
// reverted commits, classifies the survivors into sections, and assembles
// the grouped result that the renderers consume. The package performs no
// I/O and never talks to version control; callers feed it raw log text.
package changelog

import "fmt"

// Commit is one immutable change record parsed from version history.
// Commits are produced once by ParseLog and never mutated afterward.
type Commit struct {
	ID          string
	Subject     string
	AuthorName  string
	AuthorEmail string
	Timestamp   string
	Body        string
}

// Text returns the subject and body joined, the haystack for
// reference extraction.
func (c Commit) Text() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n" + c.Body
}

// Mode selects how commits are assigned to sections.
type Mode string

const (
	// ModeSections groups commits by conventional-commit prefix.
	// Assignment is exclusive: the first matching rule wins.
	ModeSections Mode = "sections"
	// ModeReferences groups commits by ticket references found in the
	// message and body. Assignment is inclusive: a commit appears under
	// every rule whose label it carries.
	ModeReferences Mode = "references"
)

// CatchAllPattern marks a section rule that collects every commit not
// claimed by an earlier rule. It is evaluated last regardless of its
// position in the rule list.
const CatchAllPattern = "*"

// ScopeOther is the bucket for commits without a parenthesized scope.
// It always renders after the alphabetically ordered scope buckets.
const ScopeOther = "Other"

// SectionRule maps a subject pattern (sections mode) or a reference
// label (references mode) to an output section. Rule list order is both
// match-priority order and rendering order.
type SectionRule struct {
	Name    string `yaml:"name" koanf:"name"`
	Pattern string `yaml:"pattern" koanf:"pattern"`
	Label   string `yaml:"label" koanf:"label"`
}

// Reference is a (label, ticket) pair extracted from commit text,
// e.g. label "US", ticket "123".
type Reference struct {
	Label  string
	Ticket string
}

// String returns the canonical LABEL-ticket form used in rendered output.
func (r Reference) String() string {
	return r.Label + "-" + r.Ticket
}

// Entry is one rendered line in a section.
type Entry struct {
	Commit Commit
	// Text is the subject with the leading type prefix stripped in
	// sections mode, or the full subject in references mode.
	Text string
	// Scope is the parenthesized scope captured from the subject,
	// empty when the subject has none.
	Scope string
	// Ref is the reference that placed this entry in its section.
	// Nil in sections mode.
	Ref *Reference
}

// Section holds the ordered entries assigned to one rule.
// Entry order equals the filtered commit order.
type Section struct {
	Name    string
	Label   string
	Entries []Entry
}

// ScopeGroup holds the entries of a section sharing one scope bucket.
type ScopeGroup struct {
	Name    string
	Entries []Entry
}

// Result is the assembled output model: sections in rule order with
// empty sections omitted, plus the running entry total.
type Result struct {
	Sections []Section
	Total    int
}

// Options configures a Generate run.
type Options struct {
	Mode  Mode
	Rules []SectionRule
	// AllowBareTicket accepts a label glued directly to digits (US123)
	// in addition to the separated forms (US-123, US_123, US:123, US 123, US#123).
	AllowBareTicket bool
	// ScanRevertBody also looks for the leading "revert" keyword in the
	// commit body when detecting revert markers. Default is subject-only.
	ScanRevertBody bool
}

// EmptyInputError reports that the input contained no parsable commit
// blocks, or that no commit survived reconciliation and classification.
// It is a terminal condition for the caller, not a retryable failure.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no commits to report: %s", e.Reason)
}

// DefaultSectionRules returns the built-in rules for sections mode.
func DefaultSectionRules() []SectionRule {
	return []SectionRule{
		{Name: "Features", Pattern: "^feat", Label: "feat"},
		{Name: "Bug Fixes", Pattern: "^fix", Label: "fix"},
		{Name: "Other Changes", Pattern: CatchAllPattern, Label: "other"},
	}
}

// DefaultReferenceRules returns the built-in rules for references mode.
func DefaultReferenceRules() []SectionRule {
	return []SectionRule{
		{Name: "User Stories", Pattern: "US", Label: "US"},
		{Name: "Bugs", Pattern: "BUG", Label: "BUG"},
	}
}

// DefaultRules returns the built-in rule set for the given mode.
func DefaultRules(mode Mode) []SectionRule {
	if mode == ModeReferences {
		return DefaultReferenceRules()
	}
	return DefaultSectionRules()
}

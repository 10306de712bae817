package changelog

import (
	"strings"
	"unicode"
)

// revertKeyword is the leading subject word that marks a revert commit.
const revertKeyword = "revert"

// ReconcileOptions configures revert reconciliation.
type ReconcileOptions struct {
	// Labels are the reference labels worth indexing, normally the
	// labels of the configured rule set. The built-in default pair is
	// used when empty.
	Labels []string
	// AllowBareTicket mirrors the extractor option.
	AllowBareTicket bool
	// ScanBody also checks the commit body for the revert keyword.
	ScanBody bool
}

// Reconcile removes revert noise from a chronologically ordered commit
// sequence: every revert marker is dropped, along with each earlier
// commit carrying a reference the marker also carries. A commit with the
// same reference positioned after the marker survives; that is the
// re-applied fix case. Removal is decided per (revert, earlier match)
// pair, so alternating revert/re-add runs resolve independently.
//
// The input order is preserved and the stage never fails; a marker with
// no extractable reference removes only itself.
func Reconcile(commits []Commit, opts ReconcileOptions) []Commit {
	if len(commits) == 0 {
		return commits
	}

	extractors := reconcileExtractors(opts)

	// Index every reference to the chronological positions carrying it.
	index := make(map[string][]int)
	refsAt := make([][]Reference, len(commits))
	for i, c := range commits {
		text := c.Text()
		for _, ex := range extractors {
			refsAt[i] = append(refsAt[i], ex.Extract(text)...)
		}
		for _, r := range refsAt[i] {
			k := referenceKey(r)
			index[k] = append(index[k], i)
		}
	}

	removed := make([]bool, len(commits))
	for p, c := range commits {
		if !isRevertMarker(c, opts.ScanBody) {
			continue
		}
		removed[p] = true
		for _, r := range refsAt[p] {
			for _, q := range index[referenceKey(r)] {
				if q < p {
					removed[q] = true
				}
			}
		}
	}

	kept := make([]Commit, 0, len(commits))
	for i, c := range commits {
		if !removed[i] {
			kept = append(kept, c)
		}
	}
	return kept
}

// reconcileExtractors builds one extractor per distinct label.
func reconcileExtractors(opts ReconcileOptions) []*extractor {
	labels := opts.Labels
	if len(labels) == 0 {
		for _, rule := range DefaultReferenceRules() {
			labels = append(labels, rule.Pattern)
		}
	}

	exOpts := ExtractorOptions{AllowBareTicket: opts.AllowBareTicket}
	seen := make(map[string]bool, len(labels))
	extractors := make([]*extractor, 0, len(labels))
	for _, label := range labels {
		key := strings.ToUpper(strings.TrimSpace(label))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		ex, err := newExtractor(label, exOpts)
		if err != nil {
			// Labels are quoted before compiling; an unusable label has
			// already been rejected by the classifier.
			continue
		}
		extractors = append(extractors, ex)
	}
	return extractors
}

// referenceKey folds case so US-12 and us-12 reconcile together.
func referenceKey(r Reference) string {
	return strings.ToUpper(r.Label) + "\x00" + strings.ToUpper(r.Ticket)
}

// isRevertMarker reports whether the commit undoes an earlier one: its
// subject (or body, when enabled) begins with the word "revert".
func isRevertMarker(c Commit, scanBody bool) bool {
	if hasLeadingRevert(c.Subject) {
		return true
	}
	return scanBody && hasLeadingRevert(c.Body)
}

// hasLeadingRevert matches "revert" case-insensitively as a complete
// leading word, so "Reverted" and "Reverts" do not qualify.
func hasLeadingRevert(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < len(revertKeyword) {
		return false
	}
	if !strings.EqualFold(s[:len(revertKeyword)], revertKeyword) {
		return false
	}
	if len(s) == len(revertKeyword) {
		return true
	}
	next := []rune(s[len(revertKeyword):])[0]
	return !unicode.IsLetter(next)
}

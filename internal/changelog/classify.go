package changelog

import "fmt"

// Policy controls how many sections may claim a single commit.
type Policy int

const (
	// Exclusive assigns each commit to at most one section: rules are
	// tried in list order and the first match wins.
	Exclusive Policy = iota
	// Inclusive lets every matching rule claim the commit, one entry
	// per extracted reference.
	Inclusive
)

// Classifier applies an ordered rule list to commits. The same type
// serves both classification modes; only the policy and the compiled
// matcher variants differ, so the two code paths cannot drift apart.
type Classifier struct {
	rules    []SectionRule
	matchers []Matcher
	policy   Policy
	catchAll int // rule index of the designated catch-all, -1 when absent
}

// NewClassifier compiles the rule list into matchers. Rule patterns that
// are not usable matching expressions fail here, before any commit is
// classified; there is no recovery or default substitution.
func NewClassifier(rules []SectionRule, policy Policy, opts ExtractorOptions) (*Classifier, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("at least one section rule is required")
	}

	c := &Classifier{rules: rules, policy: policy, catchAll: -1}
	for i, rule := range rules {
		m, err := compileRule(rule, policy, opts)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", rule.Name, err)
		}
		if policy == Exclusive && rule.Pattern == CatchAllPattern && c.catchAll < 0 {
			c.catchAll = i
		}
		c.matchers = append(c.matchers, m)
	}
	return c, nil
}

func compileRule(rule SectionRule, policy Policy, opts ExtractorOptions) (Matcher, error) {
	if policy == Inclusive {
		return NewReferenceMatcher(rule.Pattern, opts)
	}
	if rule.Pattern == CatchAllPattern {
		return CatchAll(), nil
	}
	return NewPrefixMatcher(rule.Pattern)
}

// Classify groups the commits into one entry list per rule, parallel to
// the rule list. Entry order within a list equals the input commit
// order. Commits matched by no rule are silently excluded under
// Inclusive and, when no catch-all is configured, under Exclusive too.
func (c *Classifier) Classify(commits []Commit) [][]Entry {
	grouped := make([][]Entry, len(c.rules))
	for _, commit := range commits {
		if c.policy == Inclusive {
			for i, m := range c.matchers {
				grouped[i] = append(grouped[i], m.FindMatches(commit)...)
			}
			continue
		}
		c.assignExclusive(commit, grouped)
	}
	return grouped
}

// assignExclusive gives the commit to the first matching rule. The
// catch-all is skipped during the ordered scan and consulted last,
// regardless of where it sits in the rule list.
func (c *Classifier) assignExclusive(commit Commit, grouped [][]Entry) {
	for i, m := range c.matchers {
		if i == c.catchAll {
			continue
		}
		if entries := m.FindMatches(commit); len(entries) > 0 {
			grouped[i] = append(grouped[i], entries...)
			return
		}
	}
	if c.catchAll >= 0 {
		grouped[c.catchAll] = append(grouped[c.catchAll], c.matchers[c.catchAll].FindMatches(commit)...)
	}
}

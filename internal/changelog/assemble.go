package changelog

import "sort"

// Assemble merges classifier output into the final result model.
// Sections appear in rule list order; sections with zero entries are
// omitted but still contribute nothing to the total. Entries are never
// reordered. Returns EmptyInputError when no section has any entry.
func Assemble(rules []SectionRule, grouped [][]Entry) (*Result, error) {
	res := &Result{}
	for i, rule := range rules {
		if i >= len(grouped) {
			break
		}
		entries := grouped[i]
		res.Total += len(entries)
		if len(entries) == 0 {
			continue
		}
		res.Sections = append(res.Sections, Section{
			Name:    rule.Name,
			Label:   rule.Label,
			Entries: entries,
		})
	}

	if res.Total == 0 {
		return nil, &EmptyInputError{Reason: "no commit matched any configured section"}
	}
	return res, nil
}

// ScopeGroups buckets the section's entries by scope, preserving entry
// order inside each bucket. Buckets are ordered alphabetically with the
// scope-less "Other" bucket always last.
func (s Section) ScopeGroups() []ScopeGroup {
	byScope := make(map[string][]Entry)
	var names []string
	hasOther := false

	for _, e := range s.Entries {
		scope := e.Scope
		if scope == "" {
			scope = ScopeOther
		}
		if _, ok := byScope[scope]; !ok {
			if scope == ScopeOther {
				hasOther = true
			} else {
				names = append(names, scope)
			}
		}
		byScope[scope] = append(byScope[scope], e)
	}

	sort.Strings(names)
	if hasOther {
		names = append(names, ScopeOther)
	}

	groups := make([]ScopeGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, ScopeGroup{Name: name, Entries: byScope[name]})
	}
	return groups
}

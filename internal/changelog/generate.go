package changelog

// Generate runs the full pipeline over raw log text: parse, reconcile
// reverts, classify, assemble. Given identical text and rules the output
// is exactly reproducible; nothing here touches the clock or any I/O.
func Generate(raw string, opts Options) (*Result, error) {
	commits, err := ParseLog(raw)
	if err != nil {
		return nil, err
	}

	rules := opts.Rules
	if len(rules) == 0 {
		rules = DefaultRules(opts.Mode)
	}

	commits = Reconcile(commits, ReconcileOptions{
		Labels:          reconcileLabels(rules, opts.Mode),
		AllowBareTicket: opts.AllowBareTicket,
		ScanBody:        opts.ScanRevertBody,
	})

	policy := Exclusive
	if opts.Mode == ModeReferences {
		policy = Inclusive
	}
	classifier, err := NewClassifier(rules, policy, ExtractorOptions{
		AllowBareTicket: opts.AllowBareTicket,
	})
	if err != nil {
		return nil, err
	}

	return Assemble(rules, classifier.Classify(commits))
}

// reconcileLabels picks the reference labels worth indexing for revert
// reconciliation. In references mode the configured rule patterns are
// labels; in sections mode they are subject prefixes, so reconciliation
// falls back to the built-in label pair.
func reconcileLabels(rules []SectionRule, mode Mode) []string {
	if mode != ModeReferences {
		return nil
	}
	labels := make([]string, 0, len(rules))
	for _, rule := range rules {
		labels = append(labels, rule.Pattern)
	}
	return labels
}

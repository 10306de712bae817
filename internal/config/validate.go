package config

import (
	"fmt"

	"github.com/raveheart1/relnotes/internal/changelog"
	"github.com/raveheart1/relnotes/internal/errors"
)

// Validate checks the configuration's shape. Rule patterns are not
// compiled here; the classifier rejects unusable patterns when the
// rules are first applied.
func Validate(cfg *Configuration) error {
	switch changelog.Mode(cfg.Mode) {
	case changelog.ModeSections, changelog.ModeReferences:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid mode %q", cfg.Mode),
			`Set mode to "sections" or "references"`,
		)
	}

	if cfg.Timeout <= 0 {
		return errors.NewConfigError(
			fmt.Sprintf("invalid timeout %d", cfg.Timeout),
			"Set timeout to a positive number of seconds",
		)
	}

	if err := validateRules("sections", cfg.Sections); err != nil {
		return err
	}
	return validateRules("references", cfg.References)
}

func validateRules(list string, rules []changelog.SectionRule) error {
	for i, rule := range rules {
		if rule.Name == "" {
			return errors.NewConfigError(
				fmt.Sprintf("%s[%d]: section name is required", list, i),
				"Give every rule a non-empty name",
			)
		}
		if rule.Pattern == "" {
			return errors.NewConfigError(
				fmt.Sprintf("%s[%d] (%s): pattern is required", list, i, rule.Name),
				"Give every rule a pattern, or remove the rule to use the built-in defaults",
			)
		}
	}
	return nil
}

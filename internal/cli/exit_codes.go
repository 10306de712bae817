package cli

import "github.com/raveheart1/relnotes/internal/errors"

// Exit codes for the relnotes CLI. Stable values support scripted runs
// and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure while generating
	ExitFailure = 1

	// ExitNoCommits indicates the history produced no changelog entries
	ExitNoCommits = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates an unusable configuration or rule set
	ExitConfigError = 4
)

// exitCodeFor maps an error category to the process exit code.
func exitCodeFor(category errors.ErrorCategory) int {
	switch category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Configuration:
		return ExitConfigError
	default:
		return ExitFailure
	}
}

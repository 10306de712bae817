// Package cli implements the relnotes command-line interface on top of
// cobra. Commands stay thin: they load configuration, call the git
// collaborator for raw history, run the changelog core, and hand the
// result to the renderers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnotes/internal/errors"
	"github.com/raveheart1/relnotes/internal/git"
)

// Command group IDs for help output.
const (
	GroupGenerate      = "generate"
	GroupConfiguration = "configuration"
)

var (
	configFlag string
	repoFlag   string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Generate structured changelogs from git history",
	Long: `relnotes turns a linear git commit history into a structured
changelog document. Commits are classified into sections by
conventional-commit prefix or by ticket reference, and reverted
commits are reconciled away together with the commits they undo.`,
	Example: `  relnotes generate                      # sections mode, latest tag..HEAD
  relnotes generate --mode references    # ticket-tracking release notes
  relnotes generate --output NOTES.md --base-url https://tracker/browse
  relnotes init                          # write a starter .relnotes.yml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Generation Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default .relnotes.yml)")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Path to the git repository")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// Execute runs the root command. Structured errors are formatted with
// category and remediation before the process exits non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if exitErr, ok := err.(*ExitError); ok {
		os.Exit(exitErr.Code)
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		os.Exit(exitCodeFor(cliErr.Category))
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

// ExitError carries an explicit process exit code through cobra.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

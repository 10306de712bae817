package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnotes/internal/changelog"
	"github.com/raveheart1/relnotes/internal/errors"
	"github.com/raveheart1/relnotes/internal/git"
	"github.com/raveheart1/relnotes/internal/output"
)

var previewWidthFlag int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the changelog in the terminal without writing a file",
	Example: `  relnotes preview
  relnotes preview --mode references
  relnotes preview --plain --width 100`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPreview,
}

func init() {
	previewCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&generateModeFlag, "mode", "", "Classification mode: sections or references")
	previewCmd.Flags().StringVar(&generateSinceTagFlag, "since-tag", "", "Read history from this tag to HEAD")
	previewCmd.Flags().BoolVar(&generateAllFlag, "all", false, "Read the full history instead of latest tag..HEAD")
	previewCmd.Flags().BoolVar(&generatePlainFlag, "plain", false, "Disable colored output")
	previewCmd.Flags().IntVar(&previewWidthFlag, "width", 0, "Maximum line width (0 = terminal width)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenerateConfig()
	if err != nil {
		return err
	}

	if !git.IsRepository(repoFlag) {
		return errors.NewRepositoryError(
			"not a git repository",
			"Run relnotes inside a repository, or point --repo at one",
		)
	}

	res, err := buildResult(cmd, cfg)
	if err != nil {
		var emptyErr *changelog.EmptyInputError
		if stderrors.As(err, &emptyErr) {
			output.PrintWarning(cmd.ErrOrStderr(), emptyErr.Error())
			return NewExitError(ExitNoCommits)
		}
		return err
	}

	width := previewWidthFlag
	if width == 0 {
		width = output.GetTerminalWidth()
	}
	plain := generatePlainFlag || !output.IsTTY()
	return changelog.FormatTerminal(res, cmd.OutOrStdout(), changelog.Mode(cfg.Mode), changelog.FormatOptions{
		Plain:    plain,
		MaxWidth: width,
	})
}

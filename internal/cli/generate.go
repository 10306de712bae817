package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnotes/internal/changelog"
	"github.com/raveheart1/relnotes/internal/config"
	"github.com/raveheart1/relnotes/internal/errors"
	"github.com/raveheart1/relnotes/internal/git"
	"github.com/raveheart1/relnotes/internal/output"
)

var (
	generateModeFlag     string
	generateOutputFlag   string
	generateTitleFlag    string
	generateBaseURLFlag  string
	generateSinceTagFlag string
	generateSinceFlag    string
	generateUntilFlag    string
	generateAllFlag      bool
	generateStdoutFlag   bool
	generatePlainFlag    bool
	generateWatchFlag    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a changelog from the repository's commit history",
	Long: `Generate reads the commit history (latest tag to HEAD by default),
reconciles reverted commits, classifies the survivors into sections,
and writes a markdown changelog.

Two classification modes are available:
  sections    group by conventional-commit prefix (feat, fix, ...)
  references  group by ticket references (US-123, BUG-7, ...)`,
	Example: `  relnotes generate
  relnotes generate --mode references --base-url https://tracker.example.com/browse
  relnotes generate --since-tag v1.2.0 --output docs/CHANGELOG.md
  relnotes generate --all --stdout
  relnotes generate --watch`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	generateCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateModeFlag, "mode", "", "Classification mode: sections or references")
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Output file path")
	generateCmd.Flags().StringVar(&generateTitleFlag, "title", "", "Document title")
	generateCmd.Flags().StringVar(&generateBaseURLFlag, "base-url", "", "Base URL for ticket links (references mode)")
	generateCmd.Flags().StringVar(&generateSinceTagFlag, "since-tag", "", "Read history from this tag to HEAD")
	generateCmd.Flags().StringVar(&generateSinceFlag, "since", "", "Only include commits after this date (git approxidate)")
	generateCmd.Flags().StringVar(&generateUntilFlag, "until", "", "Only include commits before this date (git approxidate)")
	generateCmd.Flags().BoolVar(&generateAllFlag, "all", false, "Read the full history instead of latest tag..HEAD")
	generateCmd.Flags().BoolVar(&generateStdoutFlag, "stdout", false, "Write markdown to stdout instead of a file")
	generateCmd.Flags().BoolVar(&generatePlainFlag, "plain", false, "Plain terminal summary (no colors)")
	generateCmd.Flags().BoolVar(&generateWatchFlag, "watch", false, "Regenerate whenever the repository HEAD moves")
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	if generateWatchFlag {
		return watchAndGenerate(cmd, cfg)
	}
	return generateOnce(cmd, cfg)
}

// loadGenerateConfig loads the layered configuration and applies the
// command's flag overrides on top.
func loadGenerateConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			return nil, cliErr
		}
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}

	if generateModeFlag != "" {
		cfg.Mode = generateModeFlag
	}
	if generateOutputFlag != "" {
		cfg.Output = generateOutputFlag
	}
	if generateTitleFlag != "" {
		cfg.Title = generateTitleFlag
	}
	if generateBaseURLFlag != "" {
		cfg.BaseURL = generateBaseURLFlag
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generateOnce(cmd *cobra.Command, cfg *config.Configuration) error {
	res, err := buildResult(cmd, cfg)
	if err != nil {
		var emptyErr *changelog.EmptyInputError
		if stderrors.As(err, &emptyErr) {
			output.PrintWarning(cmd.ErrOrStderr(), emptyErr.Error())
			return NewExitError(ExitNoCommits)
		}
		return err
	}

	markdown, err := changelog.RenderMarkdownString(res, changelog.RenderOptions{
		Title:       cfg.Title,
		Mode:        changelog.Mode(cfg.Mode),
		BaseURL:     cfg.BaseURL,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering markdown")
	}

	if generateStdoutFlag {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}

	if err := os.WriteFile(cfg.Output, []byte(markdown), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing "+cfg.Output)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s (%d entries)", cfg.Output, res.Total))
	for _, section := range res.Sections {
		output.PrintSectionCount(cmd.OutOrStdout(), section.Name, len(section.Entries))
	}
	return nil
}

// buildResult reads raw history from the git collaborator and runs the
// changelog pipeline over it.
func buildResult(cmd *cobra.Command, cfg *config.Configuration) (*changelog.Result, error) {
	logRange, err := resolveRange()
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Repository, "resolving history range")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	sp := output.StartSpinner("reading git history")
	raw, err := git.ReadLog(ctx, git.LogOptions{
		RepoPath: repoFlag,
		Range:    logRange,
		Since:    generateSinceFlag,
		Until:    generateUntilFlag,
	})
	sp.Stop()
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Repository, "reading git history")
	}

	res, err := changelog.Generate(raw, cfg.GenerateOptions())
	if err != nil {
		var emptyErr *changelog.EmptyInputError
		if stderrors.As(err, &emptyErr) {
			return nil, err
		}
		return nil, errors.WrapWithMessage(err, errors.Configuration, "classifying commits",
			"Check the section rules in your config file")
	}
	return res, nil
}

// resolveRange picks the history slice: an explicit tag, everything, or
// the latest tag to HEAD.
func resolveRange() (string, error) {
	if generateAllFlag {
		return "", nil
	}
	if generateSinceTagFlag != "" {
		return generateSinceTagFlag + "..HEAD", nil
	}
	return git.DefaultRange(repoFlag)
}

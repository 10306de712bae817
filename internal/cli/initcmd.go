package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/relnotes/internal/changelog"
	"github.com/raveheart1/relnotes/internal/config"
	"github.com/raveheart1/relnotes/internal/errors"
	"github.com/raveheart1/relnotes/internal/output"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .relnotes.yml to the current directory",
	Long: `Init writes a project configuration file pre-filled with the
built-in section rules so they can be edited rather than written
from scratch.`,
	Example: `  relnotes init
  relnotes init --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	initCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "Overwrite an existing config file")
}

// starterConfig mirrors the Configuration shape but only carries the
// fields a fresh project should see in its config file.
type starterConfig struct {
	Mode       string                  `yaml:"mode"`
	Title      string                  `yaml:"title"`
	Output     string                  `yaml:"output"`
	Sections   []changelog.SectionRule `yaml:"sections"`
	References []changelog.SectionRule `yaml:"references"`
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return errors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Pass --force to overwrite it",
		)
	}

	starter := starterConfig{
		Mode:       string(changelog.ModeSections),
		Title:      "Changelog",
		Output:     "CHANGELOG.md",
		Sections:   changelog.DefaultSectionRules(),
		References: changelog.DefaultReferenceRules(),
	}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "encoding starter config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing "+path)
	}

	output.PrintSuccess(cmd.OutOrStdout(), "Wrote "+path)
	return nil
}

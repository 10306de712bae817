package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnotes/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "relnotes %s\n", build.Version)
		if build.IsDevBuild() {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", build.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", build.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

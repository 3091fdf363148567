// Package main provides the entry point for the turbulence CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turbulence-sh/turbulence/cmd/turbulence/commands"
	"github.com/turbulence-sh/turbulence/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turbulence",
		Short: "Turbulence - rank source files by churn and complexity",
		Long: `Turbulence ranks the files of a repository by a composite risk
score built from version-control churn and structural complexity.

Commands:
  rank      Measure and rank the files of a repository`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewRankCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "turbulence %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

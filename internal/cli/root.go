package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes.
const (
	ExitSuccess       = 0
	ExitReviewNeeded  = 1
	ExitUsageError    = 2
	ExitProviderError = 3
	ExitRuntimeError  = 4
)

var rootCmd = &cobra.Command{
	Use:   "arbiter",
	Short: "Two-perspective AI debate over code changes and plans",
	Long:  "Arbiter sends a plan or code change to two independent AI reviewers, streams their progress, and combines the verdicts into a consensus score with a recommendation.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		if exitCode == ExitSuccess {
			return ExitRuntimeError
		}
		return exitCode
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print arbiter version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "arbiter version %s\n", version)
	},
}

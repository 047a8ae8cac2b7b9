package main

import (
	"fmt"
	"os"

	"mercator-hq/sweeper/pkg/cli"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	settingsFile string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "sweeper [policy-file]",
	Short: "Sweeper - file retention agent",
	Long: `Sweeper deletes files and directories that have outlived their retention.

The policy file (default config.ini) lists path patterns and retention periods:

  scan_period_sec = 60
  path = /var/tmp/*.tmp, 7

Every scan interval the policy is re-read, each pattern is expanded and every
match older than its retention is deleted. Type "exit" (or Ctrl+X, Enter) to stop.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runAgent,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code mapped from its
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "agent settings file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

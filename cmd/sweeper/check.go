package main

import (
	"fmt"
	"strings"

	"mercator-hq/sweeper/pkg/cli"
	"mercator-hq/sweeper/pkg/config"
	"mercator-hq/sweeper/pkg/policy"

	"github.com/spf13/cobra"
)

var checkFlags struct {
	output string
}

var checkCmd = &cobra.Command{
	Use:   "check [policy-file]",
	Short: "Parse a policy file and print its entries",
	Long: `Parse a policy file exactly as the agent would and print the result.
Nothing is deleted. The command exits with status 2 when the policy has no
entries.

Examples:
  # Check the default policy
  sweeper check

  # Machine-readable output
  sweeper check /etc/sweeper/policy.ini --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkPolicy,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.output, "output", "o", "text", "output format (text, json)")
}

// checkResult is the check command's output.
type checkResult struct {
	Source              string         `json:"source"`
	ScanIntervalSeconds int            `json:"scan_interval_seconds"`
	Entries             []policy.Entry `json:"entries"`
	Valid               bool           `json:"valid"`
	Error               string         `json:"error,omitempty"`
}

func (r checkResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Policy: %s\n", r.Source)
	fmt.Fprintf(&b, "Scan interval: %ds\n", r.ScanIntervalSeconds)
	fmt.Fprintf(&b, "Entries: %d\n", len(r.Entries))
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	if r.Valid {
		b.WriteString("✓ Policy valid")
	} else {
		fmt.Fprintf(&b, "✗ %s", r.Error)
	}
	return b.String()
}

func checkPolicy(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(checkFlags.output)
	if err != nil {
		return err
	}

	path := config.DefaultPolicyPath
	if len(args) > 0 {
		path = args[0]
	}

	out := cmd.OutOrStdout()
	var opts []policy.Option
	if format == cli.FormatText {
		opts = append(opts, policy.WithVerbose(cmd.ErrOrStderr()))
	}

	p, loadErr := policy.Load(path, opts...)
	result := checkResult{
		Source:              p.Source,
		ScanIntervalSeconds: p.ScanIntervalSeconds,
		Entries:             p.Entries,
		Valid:               true,
	}
	if result.Entries == nil {
		result.Entries = []policy.Entry{}
	}

	verr := p.Validate()
	if verr != nil {
		result.Valid = false
		result.Error = verr.Error()
		if loadErr != nil {
			result.Error = loadErr.Error()
		}
	}

	if err := cli.NewFormatter(format).FormatTo(out, result); err != nil {
		return cli.NewCommandError("check", err)
	}

	if verr != nil {
		return cli.NewExitError(cli.ExitPolicy, fmt.Errorf("policy %s: %w", path, verr))
	}
	return nil
}

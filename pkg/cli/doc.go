/*
Package cli provides command-line helpers for the sweeper command.

Output Formatting:

The check command prints the parsed policy as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Exit Codes:

Errors returned from commands are mapped to process exit codes with
ExitCode. Wrap an error in an ExitError to choose the code explicitly:

	return cli.NewExitError(cli.ExitPolicy, err)

Signal Handling:

For shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mercator-hq/sweeper/pkg/cli"
	"mercator-hq/sweeper/pkg/config"
	"mercator-hq/sweeper/pkg/control"
	"mercator-hq/sweeper/pkg/policy"
	"mercator-hq/sweeper/pkg/retention"
	"mercator-hq/sweeper/pkg/server"
	"mercator-hq/sweeper/pkg/telemetry/logging"
	"mercator-hq/sweeper/pkg/telemetry/metrics"
	"mercator-hq/sweeper/pkg/telemetry/tracing"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var runFlags struct {
	verbose       bool
	quiet         bool
	once          bool
	stopFile      string
	metricsListen string
}

func init() {
	rootCmd.Flags().BoolVarP(&runFlags.verbose, "verbose", "v", false, "echo the parsed policy on the first load (default from settings)")
	rootCmd.Flags().BoolVarP(&runFlags.quiet, "quiet", "q", false, "do not echo the parsed policy")
	rootCmd.Flags().BoolVar(&runFlags.once, "once", false, "run a single scan pass and exit")
	rootCmd.Flags().StringVar(&runFlags.stopFile, "stop-file", "", "stop when this file is created or written")
	rootCmd.Flags().StringVar(&runFlags.metricsListen, "metrics-listen", "", "serve /metrics and /health on this address")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// loadSettings loads the settings file, applies flag overrides and
// validates the result.
func loadSettings(args []string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(settingsFile)
	if err != nil {
		return nil, cli.NewConfigError("settings", err.Error())
	}

	if len(args) > 0 {
		cfg.Agent.PolicyPath = args[0]
	}
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if runFlags.verbose {
		cfg.Agent.Verbose = true
	}
	if runFlags.quiet {
		cfg.Agent.Verbose = false
	}
	if runFlags.once {
		cfg.Agent.Once = true
	}
	if runFlags.stopFile != "" {
		cfg.Control.StopFile = runFlags.stopFile
	}
	if runFlags.metricsListen != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.ListenAddress = runFlags.metricsListen
	}

	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("settings", err.Error())
	}
	return cfg, nil
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}

	source, raw, err := buildSource(cfg.Control, cmd.InOrStdin())
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer source.Close()

	out := cmd.OutOrStdout()
	logCfg := logging.FromSettings(cfg.Telemetry.Logging)
	if raw {
		out = control.NewTerminalWriter(out)
		logCfg.Writer = control.NewTerminalWriter(logCfg.Writer)
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	sweeper := retention.NewSweeper(out)
	sweeper.Metrics = collector
	sweeper.Tracer = tracer
	sweeper.Logger = logger.With("component", "retention.sweeper")

	scheduler := retention.NewScheduler(retention.Config{
		PolicyPath: cfg.Agent.PolicyPath,
		Verbose:    cfg.Agent.Verbose,
		Once:       cfg.Agent.Once,
	}, sweeper, source)
	scheduler.SetLogger(logger.With("component", "retention.scheduler"))

	if cfg.Telemetry.Metrics.Enabled {
		srv := server.New(&cfg.Telemetry.Metrics, collector, scheduler, Version)
		if err := srv.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer srv.Shutdown(context.Background())
	}

	logger.Info("sweeper started",
		"policy", cfg.Agent.PolicyPath,
		"once", cfg.Agent.Once,
		"version", Version,
	)

	if err := scheduler.Run(ctx); err != nil {
		if errors.Is(err, policy.ErrNoEntries) {
			return cli.NewExitError(cli.ExitPolicy, err)
		}
		return cli.NewCommandError("run", err)
	}
	return nil
}

// buildSource combines the command sources enabled in settings. It
// reports whether the console switched stdin to raw terminal mode.
func buildSource(cfg config.ControlConfig, stdin io.Reader) (control.Source, bool, error) {
	var sources []control.Source
	raw := false

	if consoleEnabled(cfg.Console, stdin) {
		console := newConsole(stdin)
		raw = console.Raw()
		sources = append(sources, console)
	}
	if cfg.Signals {
		sources = append(sources, control.NewSignal())
	}
	if cfg.StopFile != "" {
		sf, err := control.NewStopFile(cfg.StopFile)
		if err != nil {
			control.Any(sources...).Close()
			return nil, false, err
		}
		sources = append(sources, sf)
	}

	return control.Any(sources...), raw, nil
}

// newConsole reads keystrokes from a terminal in raw mode and falls back
// to line input for anything else.
func newConsole(stdin io.Reader) *control.Console {
	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		console, err := control.NewTerminalConsole(f)
		if err == nil {
			return console
		}
		slog.Warn("falling back to line input", "error", err)
	}
	return control.NewConsole(stdin)
}

// consoleEnabled resolves the console mode. In auto mode the console is
// read only when stdin is a terminal.
func consoleEnabled(mode string, stdin io.Reader) bool {
	switch mode {
	case config.ConsoleOn:
		return true
	case config.ConsoleOff:
		return false
	}

	f, ok := stdin.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

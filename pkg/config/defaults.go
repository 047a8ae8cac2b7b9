package config

import "time"

// Default values for configuration fields.
const (
	// Agent defaults
	DefaultPolicyPath   = "config.ini"
	DefaultAgentVerbose = true

	// Control defaults
	DefaultControlConsole = ConsoleAuto
	DefaultControlSignals = true

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultLoggingOutput        = "stderr"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9310"
	DefaultPrometheusPath       = "/metrics"
	DefaultMetricsNamespace     = "sweeper"
	DefaultMetricsSubsystem     = "retention"
	DefaultMetricsMaxPatterns   = 500
	DefaultTracingEnabled       = false
	DefaultTracingSampler       = "always"
	DefaultTracingSampleRatio   = 1.0
	DefaultTracingServiceName   = "sweeper"
	DefaultTracingOTLPInsecure  = true
	DefaultTracingOTLPTimeout   = 10 * time.Second
)

// Console modes.
const (
	ConsoleAuto = "auto"
	ConsoleOn   = "on"
	ConsoleOff  = "off"
)

// DefaultCycleDurationBuckets covers scan passes from a few files to large trees.
var DefaultCycleDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120}

// Default returns a Config populated with default values. YAML documents are
// decoded on top of it, so boolean settings keep their defaults when absent.
func Default() *Config {
	cfg := &Config{
		Agent: AgentConfig{
			PolicyPath: DefaultPolicyPath,
			Verbose:    DefaultAgentVerbose,
		},
		Control: ControlConfig{
			Console: DefaultControlConsole,
			Signals: DefaultControlSignals,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP: OTLPConfig{
					Insecure: DefaultTracingOTLPInsecure,
				},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Agent.PolicyPath == "" {
		cfg.Agent.PolicyPath = DefaultPolicyPath
	}
	if cfg.Control.Console == "" {
		cfg.Control.Console = DefaultControlConsole
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Logging.Output == "" {
		cfg.Telemetry.Logging.Output = DefaultLoggingOutput
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.MaxPatternLabels == 0 {
		cfg.Telemetry.Metrics.MaxPatternLabels = DefaultMetricsMaxPatterns
	}
	if len(cfg.Telemetry.Metrics.CycleDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.CycleDurationBuckets = append([]float64(nil), DefaultCycleDurationBuckets...)
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultTracingOTLPTimeout
	}
}

package config

import "time"

// Config is the root settings structure for the sweeper agent.
type Config struct {
	// Agent controls the scan loop.
	Agent AgentConfig `yaml:"agent"`

	// Control selects the sources that can stop the agent.
	Control ControlConfig `yaml:"control"`

	// Telemetry contains logging, metrics and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AgentConfig contains scan loop settings.
type AgentConfig struct {
	// PolicyPath is the retention policy file read on every cycle.
	// Default: "config.ini"
	PolicyPath string `yaml:"policy_path"`

	// Verbose echoes the parsed policy on the first load.
	// Default: true
	Verbose bool `yaml:"verbose"`

	// Once stops the agent after the first scan pass.
	// Default: false
	Once bool `yaml:"once"`
}

// ControlConfig contains cancellation source settings.
type ControlConfig struct {
	// Console reads exit commands from standard input.
	// Options: "auto" (only when stdin is a terminal), "on", "off"
	// Default: "auto"
	Console string `yaml:"console"`

	// StopFile stops the agent when the file is created or written.
	// Empty disables the stop file.
	StopFile string `yaml:"stop_file"`

	// Signals stops the agent on SIGINT or SIGTERM.
	// Default: true
	Signals bool `yaml:"signals"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// Output is the log destination.
	// Options: "stderr", "stdout"
	// Default: "stderr"
	Output string `yaml:"output"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled serves the metrics endpoint.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address of the metrics and health endpoint.
	// Default: "127.0.0.1:9310"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "sweeper"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "retention"
	Subsystem string `yaml:"subsystem"`

	// MaxPatternLabels caps distinct pattern label values.
	// Default: 500
	MaxPatternLabels int `yaml:"max_pattern_labels"`

	// CycleDurationBuckets defines histogram buckets for scan pass duration (seconds).
	// Default: [0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120]
	CycleDurationBuckets []float64 `yaml:"cycle_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of cycles to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "sweeper"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

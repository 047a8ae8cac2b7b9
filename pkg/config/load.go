package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads settings from a YAML file at the specified path.
// Values in the file override the defaults; the result is validated.
// An empty path returns the validated defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads settings and applies environment variable
// overrides. Environment variables follow the naming convention
// SWEEPER_SECTION_FIELD and always take precedence over the file.
//
// The loading sequence is:
// 1. Load YAML from file (or defaults)
// 2. Apply environment variable overrides
// 3. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Agent overrides
	if val := os.Getenv("SWEEPER_AGENT_POLICY_PATH"); val != "" {
		cfg.Agent.PolicyPath = val
	}
	if val := os.Getenv("SWEEPER_AGENT_VERBOSE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Agent.Verbose = b
		}
	}
	if val := os.Getenv("SWEEPER_AGENT_ONCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Agent.Once = b
		}
	}

	// Control overrides
	if val := os.Getenv("SWEEPER_CONTROL_CONSOLE"); val != "" {
		cfg.Control.Console = val
	}
	if val := os.Getenv("SWEEPER_CONTROL_STOP_FILE"); val != "" {
		cfg.Control.StopFile = val
	}
	if val := os.Getenv("SWEEPER_CONTROL_SIGNALS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Control.Signals = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("SWEEPER_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_LOGGING_OUTPUT"); val != "" {
		cfg.Telemetry.Logging.Output = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
	if val := os.Getenv("SWEEPER_TELEMETRY_TRACING_OTLP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Telemetry.Tracing.OTLP.Timeout = d
		}
	}
}

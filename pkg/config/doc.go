// Package config provides agent settings for sweeper.
//
// Settings cover the ambient concerns of the agent: where the retention
// policy lives, how the operator can stop it, and how it logs, exports
// metrics and traces. The retention policy itself is a separate file,
// re-read on every scan cycle by package policy.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfigWithEnvOverrides("sweeper.yaml")
//
// An empty path returns the defaults, so a settings file is optional.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SWEEPER_SECTION_FIELD:
//
//   - SWEEPER_AGENT_POLICY_PATH overrides agent.policy_path
//   - SWEEPER_CONTROL_STOP_FILE overrides control.stop_file
//   - SWEEPER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - SWEEPER_TELEMETRY_METRICS_LISTEN_ADDRESS overrides telemetry.metrics.listen_address
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	agent:
//	  policy_path: /etc/sweeper/config.ini
//	  verbose: true
//	control:
//	  console: auto
//	  stop_file: /run/sweeper/stop
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9310
package config

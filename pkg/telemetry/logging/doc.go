// Package logging provides structured logging for the sweeper agent.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware logging: the scan cycle id stored in a context is
//     attached to every record logged with that context
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	ctx := logging.WithCycleID(ctx, id)
//	logger.InfoContext(ctx, "scan pass completed", "deleted", 3)
//	// level=INFO msg="scan pass completed" deleted=3 cycle_id=...
//
// Operator-facing console lines (deletion notices, exit notices) are not
// logs; they are written directly to the console writer by the scheduler.
package logging

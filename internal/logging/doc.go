// Package logging provides structured logging for the magichome tools.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the CLI and the device session layer.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (frame hex dumps, state replies)
//   - Info: Normal operations (connections, commands)
//   - Warn: Non-fatal issues (suspect replies)
//   - Error: Fatal issues (startup failures)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// MAGICHOME_LOG_LEVEL environment variable to enable it:
//
//	MAGICHOME_LOG_LEVEL=debug magichome-ctl status --device 192.168.1.42
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Connection event",
//	    zap.String("remote_addr", "192.168.1.42:5577"),
//	    zap.String("event", "connected"),
//	)
//
// Frame tracing is available at debug level:
//
//	logging.LogFrame(addr, "sent", frame)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging

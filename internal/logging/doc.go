// Package logging provides structured logging for the lcdmenu tools.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the controller and its input sources. Logging is
// silent by default so the CLI stays quiet; set LCDMENU_LOG_LEVEL (or pass an
// explicit level to Initialize) to enable output.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (serial hex dumps, sleep timer checks)
//   - Info: Normal operations (connections, remote commands, state changes)
//   - Warn: Non-fatal issues (backlight write failures, dropped commands)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Remote command received",
//	    zap.String("remote_addr", "192.168.1.100"),
//	    zap.String("action", "next"),
//	)
//
// # Serial Traffic
//
// LogRawBytes dumps the exact bytes written to the display at debug level,
// with both hex and printable-ASCII views:
//
//	logging.LogRawBytes("serlcd write", data)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging

// Package logging provides structured logging for the scanner.
//
// This package wraps the zap logger with convenience functions for common
// logging patterns used throughout the scanner. Logging is silent by default
// so that the report printed to stdout stays clean and machine-parseable;
// diagnostics always go to stderr.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: per-frame and per-batch detail (dropped frames, batch progress)
//   - Info: normal operations (interface selection, discoveries, timings)
//   - Warn: recovered issues (skipped label lines, mDNS failures)
//   - Error: fatal issues (capture open failures, hosts file errors)
//
// # Configuration
//
// Initialize logging at startup, either explicitly or from the
// ARPSCAN_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The --verbose flag maps to the debug level.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging

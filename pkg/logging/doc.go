// Package logging provides structured logging utilities for the valuetype tools.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so every component logs the same way. It supports environment-based log
// level configuration, module/version context injection, and source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("valuetype", "v1.0.0")
//	    slog.Info("checking instances", "files", 3)
//	}
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug valuetype check -r recipes.yaml data.yaml
//
// All logs are written to stderr in JSON format. The engine packages
// (recipe, instance) only emit debug records, so library users see nothing
// unless they opt in.
package logging

// Package logging provides structured logging utilities for the exporter.
//
// It wraps the standard library slog package with shared defaults: JSON
// output to stderr, module/version context on every record, environment
// based level configuration via LOG_LEVEL, and source location tracking
// for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("kube-job-exporter", version)
//
//	    slog.Info("poll completed", "jobs", n)
//	    slog.Error("poll failed", "error", err)
//	}
//
// The LOG_LEVEL environment variable controls verbosity (debug, info,
// warn, error; case-insensitive). If unset, defaults to info.
package logging

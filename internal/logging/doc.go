// Package logging assembles structured slog loggers and formatting helpers used
// across gstcatalog.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so catalog code can tag log
// lines with the refresh session and CLI command. A no-op logger is provided
// for tests and library callers that do not care about output.
package logging

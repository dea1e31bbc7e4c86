// Package services defines shared helpers for the external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp refresh session IDs and CLI command names for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can tell tool
//     failures from configuration or lookup problems with errors.Is.
package services

// Package config loads, normalizes, and validates gstcatalog configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the GST_INSPECT_BINARY and
// GSTCATALOG_LOCALE environment fallbacks. A missing config file is not an
// error: the defaults describe a working setup.
package config

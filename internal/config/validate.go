package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInspect(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInspect() error {
	if c.Inspect.Binary == "" {
		return errors.New("inspect.binary must be set")
	}
	if c.Inspect.TimeoutSeconds < 0 {
		return errors.New("inspect.timeout_seconds must be zero or positive")
	}
	if c.Inspect.Workers < 0 {
		return errors.New("inspect.workers must be zero or positive")
	}
	if c.Inspect.SnapshotRetention < 1 {
		return errors.New("inspect.snapshot_retention must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

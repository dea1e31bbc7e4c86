package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInspect()
	c.normalizeFlags()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDirPath()
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInspect() {
	if value, ok := os.LookupEnv("GST_INSPECT_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Inspect.Binary = value
	}
	c.Inspect.Binary = strings.TrimSpace(c.Inspect.Binary)
	if c.Inspect.Binary == "" {
		c.Inspect.Binary = defaultInspectBinary
	}
	if c.Inspect.Locale == "" {
		if value, ok := os.LookupEnv("GSTCATALOG_LOCALE"); ok {
			c.Inspect.Locale = value
		}
	}
	c.Inspect.Locale = strings.TrimSpace(c.Inspect.Locale)
}

func (c *Config) normalizeFlags() {
	c.Flags.Readable = cleanTokens(c.Flags.Readable)
	c.Flags.Writable = cleanTokens(c.Flags.Writable)
	c.Flags.Controllable = cleanTokens(c.Flags.Controllable)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func cleanTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if trimmed := strings.ToLower(strings.TrimSpace(token)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

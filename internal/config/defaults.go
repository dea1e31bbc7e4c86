package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath        = "~/.config/gstcatalog/config.toml"
	defaultDataDir           = "~/.local/share/gstcatalog"
	defaultLogDir            = "~/.local/share/gstcatalog/logs"
	defaultInspectBinary     = "gst-inspect-1.0"
	defaultInspectTimeout    = 120
	defaultSnapshotRetention = 5
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDirPath(),
			LogDir:  defaultLogDir,
		},
		Inspect: Inspect{
			Binary:            defaultInspectBinary,
			TimeoutSeconds:    defaultInspectTimeout,
			SnapshotRetention: defaultSnapshotRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultDataDirPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "gstcatalog")
	}
	return defaultDataDir
}

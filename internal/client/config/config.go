package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the GreenSnap CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, without a trailing slash.
//   - DataDir: directory holding the local session database and install secret.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://greensnapbackend.onrender.com/api"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 15 * time.Second
}

// defaultDataDir prefers the platform config directory and falls back to a
// dotted directory in the working directory when it cannot be resolved.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "greensnap")
	}
	return ".greensnap"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

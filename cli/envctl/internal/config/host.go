package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HostConfig holds per-user settings. Command arguments are not configurable.
type HostConfig struct {
	Backend  string `yaml:"backend"`
	Dir      string `yaml:"dir"`
	LogLevel string `yaml:"log_level"`
	// Timeout is a Go duration such as "10m"; empty means no deadline.
	Timeout string `yaml:"timeout"`
}

// ParsedTimeout returns the configured timeout, zero when unset.
func (c HostConfig) ParsedTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	return time.ParseDuration(strings.TrimSpace(c.Timeout))
}

// Path returns the config file location: $ENVCTL_CONFIG, else
// <user config dir>/envctl/config.yaml.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("ENVCTL_CONFIG")); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "envctl", "config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "envctl", "config.yaml")
	}
	return ""
}

// ReadHostConfig loads the host config. A missing file yields defaults.
// ENVCTL_DEBUG=1 forces the debug log level.
func ReadHostConfig() (HostConfig, string, error) {
	var cfg HostConfig
	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, path, err
			}
		case !os.IsNotExist(err):
			return cfg, path, err
		}
	}
	if cfg.Dir != "" && !filepath.IsAbs(cfg.Dir) && path != "" {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	if os.Getenv("ENVCTL_DEBUG") == "1" {
		cfg.LogLevel = "debug"
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	return cfg, path, nil
}

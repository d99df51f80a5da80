// Package config loads application settings from defaults, an optional YAML
// file and DAILY_TODOS_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DAILY_TODOS_HTTP_ADDR.
const EnvPrefix = "DAILY_TODOS"

// ConfigFileEnv names a config file when no explicit path is given.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// Load reads configuration. path may be empty, in which case ConfigFileEnv is
// consulted; no file at all is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if c.History.RetentionDays <= 0 {
		return fmt.Errorf("history.retention_days must be positive, got %d", c.History.RetentionDays)
	}
	if _, err := c.History.Location(); err != nil {
		return err
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/example/daily-todos/modules/storage"
)

// Config is the full application configuration.
type Config struct {
	HTTP    HTTPConfig     `mapstructure:"http"`
	Log     LogConfig      `mapstructure:"log"`
	Storage storage.Config `mapstructure:"storage"`
	History HistoryConfig  `mapstructure:"history"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HistoryConfig configures the archive.
type HistoryConfig struct {
	RetentionDays int    `mapstructure:"retention_days"`
	Timezone      string `mapstructure:"timezone"`
}

// Location resolves Timezone. Empty means UTC.
func (h HistoryConfig) Location() (*time.Location, error) {
	if h.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid history.timezone %q: %w", h.Timezone, err)
	}
	return loc, nil
}

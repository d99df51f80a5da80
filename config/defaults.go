package config

import "github.com/spf13/viper"

// defaults lists every key with its default value. Keys must be registered
// here for environment overrides to reach them.
var defaults = map[string]any{
	"http.addr": ":3000",

	"log.level":  "info",
	"log.format": "text",

	"storage.backend":            "sqlite",
	"storage.sqlite_path":        "daily-todos.db",
	"storage.redis_addr":         "localhost:6379",
	"storage.redis_prefix":       "daily-todos:",
	"storage.nats_url":           "nats://localhost:4222",
	"storage.bucket":             "daily-todos",
	"storage.quarantine_corrupt": true,
	"storage.debug":              false,

	"history.retention_days": 30,
	"history.timezone":       "UTC",
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

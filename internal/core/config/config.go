package config

import (
	"time"

	"github.com/vietddude/godad/internal/infra/cache"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Prefix  string        `yaml:"prefix"`  // versioned API prefix, default /api
	Timeout time.Duration `yaml:"timeout"` // per-request deadline
}

// CacheConfig selects the user-projection store backend.
type CacheConfig struct {
	Backend string            `yaml:"backend"` // file (default) or redis
	Dir     string            `yaml:"dir"`     // file backend directory override
	Redis   cache.RedisConfig `yaml:"redis"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

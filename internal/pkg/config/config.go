package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DataDir holds the users/books/loans JSON snapshot files.
	DataDir string `env:"DATA_DIR, default=data"`
	// AutosaveInterval controls the periodic snapshot loop. Zero disables it.
	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL, default=5m"`

	// SessionStore selects the session registry backend: memory or redis.
	SessionStore string `env:"SESSION_STORE, default=memory"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

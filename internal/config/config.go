package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string        `env:"SERVER_PORT" envDefault:"8080"`
	DBDriver     string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseDSN  string        `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres dbname=feedback port=5432 sslmode=disable"`
	DBEcho       bool          `env:"DB_ECHO" envDefault:"false"`
	ResetDB      bool          `env:"RESET_DB" envDefault:"false"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	SecretKey    string        `env:"SECRET_KEY" envDefault:"change-me"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool          `env:"LOG_PRETTY" envDefault:"true"`
	SwaggerHost  string        `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

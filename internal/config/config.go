package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port    string `env:"PORT, default=8080"`
	GinMode string `env:"GIN_MODE, default=debug"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	JWTSecret     string `env:"JWT_SECRET, default=default-jwt-secret-change-me"`
	SessionSecret string `env:"SESSION_SECRET, default=default-secret-key-change-me"`

	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`

	SeedFile string `env:"SEED_FILE"`

	DB    DBConfig
	Redis RedisConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER, default=mysql"`
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=3306"`
	User     string `env:"DB_USER, default=tracker"`
	Password string `env:"DB_PASSWORD, default=trackerpassword"`
	Name     string `env:"DB_NAME, default=progress_tracker"`
	// Path is the SQLite database file, used when Driver is "sqlite".
	Path     string `env:"DB_PATH, default=progress_tracker.db"`
	LogLevel string `env:"DB_LOG_LEVEL, default=warn"`
}

type RedisConfig struct {
	Host string `env:"REDIS_HOST"`
	Port string `env:"REDIS_PORT, default=6379"`
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

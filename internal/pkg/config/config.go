package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs session tokens. Required: the process must not start
	// with an implicit default key.
	JWTSecret string `env:"JWT_SECRET, required"`

	// SuperAdminEmail, when set, registers as an already-verified admin.
	SuperAdminEmail string `env:"SUPER_ADMIN_EMAIL"`

	// AppBaseURL is the public frontend origin used in emailed links.
	AppBaseURL string `env:"APP_BASE_URL, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=finance_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@fintrack.local"`
	Workers  int    `env:"SMTP_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT_SECRET fails the load; the process never falls back to an
// implicit signing key.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

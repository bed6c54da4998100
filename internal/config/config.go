package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration
type Config struct {
	Port       string        `env:"PORT" envDefault:"3000"`
	DBHost     string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string        `env:"DB_PORT" envDefault:"5432"`
	DBUser     string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword string        `env:"DB_PASSWORD"`
	DBName     string        `env:"DB_NAME" envDefault:"shop"`
	DBSSLMode  string        `env:"DB_SSLMODE" envDefault:"disable"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost < bcrypt.DefaultCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.DefaultCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	return cfg, nil
}

// DSN returns the postgres connection URL built from the DB_* options
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/salestax/internal/storage"
)

// Config holds the server settings.
type Config struct {
	Port         int
	DBPath       string
	RatesVersion string
	// AuthSecret signs terminal tokens. Empty disables authentication.
	AuthSecret string
	TokenTTL   time.Duration
}

// Defaults used when the matching variable is unset.
const (
	DefaultPort     = 8080
	DefaultDBPath   = "./data/rates.db"
	DefaultTokenTTL = 24 * time.Hour
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads PORT, DB_PATH, RATES_VERSION, AUTH_SECRET and TOKEN_TTL.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:       getEnv("DB_PATH", DefaultDBPath),
		RatesVersion: getEnv("RATES_VERSION", storage.StandardVersion),
		AuthSecret:   os.Getenv("AUTH_SECRET"),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d out of range", port)
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", DefaultTokenTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}

// AuthEnabled reports whether terminal tokens are required.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

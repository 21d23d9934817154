// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr         string   // listen address, default :8080
	JWTSecret    string   // shared HS256 secret, required
	AccountsFile string   // optional JSON seed file of accounts
	KafkaBrokers []string // empty means events are not published
	KafkaTopic   string
	LogLevel     string // debug|info|warn|error
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// Best effort: a missing .env just means plain env vars are used.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         getenv("ADDR", ":8080"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AccountsFile: os.Getenv("ACCOUNTS_FILE"),
		KafkaTopic:   getenv("KAFKA_TOPIC", "transaction_completed"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

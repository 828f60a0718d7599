package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string

	Auth struct {
		TokenSecret string
		TokenTTL    time.Duration
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	tokenSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if tokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must be set")
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	cfg := &Config{
		ServerPort:  serverPort,
		DatabaseURL: databaseURL,
	}
	cfg.Auth.TokenSecret = tokenSecret
	cfg.Auth.TokenTTL = tokenTTL
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL        = "http://localhost:8000/api"
	DefaultStateDSN      = "storefront.db"
	DefaultFakeAPIAddr   = ":8000"
	DefaultFakeAPISecret = "fakeapi-dev-secret"
)

type Config struct {
	APIBaseURL string
	StateDSN   string
	LogLevel   string

	FakeAPIAddr   string
	FakeAPISecret []byte
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL: EnvDefault("STOREFRONT_API_URL", EnvDefault("NEXT_PUBLIC_API_URL", DefaultAPIURL)),
		StateDSN:   EnvDefault("STOREFRONT_STATE_DSN", DefaultStateDSN),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		FakeAPIAddr:   EnvDefault("FAKEAPI_ADDR", DefaultFakeAPIAddr),
		FakeAPISecret: []byte(EnvDefault("FAKEAPI_JWT_SECRET", DefaultFakeAPISecret)),
	}

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("STOREFRONT_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("STOREFRONT_API_URL must be an absolute http(s) URL")
	}
	if u.Host == "" {
		return errors.New("STOREFRONT_API_URL has no host")
	}
	return nil
}

func EnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Settings is the process configuration, sourced from environment
// variables (a .env file is loaded by main before this runs).
// Immutable after construction.
type Settings struct {
	APIKey     string
	APISecret  string
	Testnet    bool
	Demo       bool
	Domain     string
	TLD        string
	ListenAddr string
	LogLevel   string
}

func FromEnv() Settings {
	return Settings{
		APIKey:     os.Getenv("BYBIT_API_KEY"),
		APISecret:  os.Getenv("BYBIT_API_SECRET"),
		Testnet:    truthy(getenv("TESTNET", "true")),
		Demo:       truthy(os.Getenv("DEMO")),
		Domain:     os.Getenv("BYBIT_DOMAIN"),
		TLD:        os.Getenv("BYBIT_TLD"),
		ListenAddr: getenv("LISTEN_ADDR", "localhost:8000"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}
}

func (s Settings) Validate() error {
	if s.APIKey == "" || s.APISecret == "" {
		return errors.New("BYBIT_API_KEY and BYBIT_API_SECRET must be set in environment variables")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "t", "y", "yes":
		return true
	}
	return false
}

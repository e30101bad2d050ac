package config

import (
	"fmt"
	"os"

	"bankfeed-api/utils"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	FrontendURL string

	GoCardlessSecretID  string
	GoCardlessSecretKey string

	// CategoryModelPath points at a serialized classifier; empty means
	// train from the embedded seed corpus.
	CategoryModelPath string

	Currency utils.CurrencyFormat
}

// Load reads the configuration from the environment and validates the
// parts nothing can run without.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		GoCardlessSecretID:  os.Getenv("GOCARDLESS_SECRET_ID"),
		GoCardlessSecretKey: os.Getenv("GOCARDLESS_SECRET_KEY"),
		CategoryModelPath:   os.Getenv("CATEGORY_MODEL_PATH"),
		Currency: utils.CurrencyFormat{
			Symbol:       getEnv("CURRENCY_SYMBOL", "€"),
			DecimalSep:   getEnv("CURRENCY_DECIMAL_SEP", ","),
			ThousandsSep: getEnv("CURRENCY_THOUSANDS_SEP", " "),
			Decimals:     2,
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

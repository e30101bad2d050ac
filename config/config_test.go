package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupEnv() {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "FRONTEND_URL", "JWT_SECRET",
		"GOCARDLESS_SECRET_ID", "GOCARDLESS_SECRET_KEY",
		"CATEGORY_MODEL_PATH", "CURRENCY_SYMBOL",
		"CURRENCY_DECIMAL_SEP", "CURRENCY_THOUSANDS_SEP",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("JWT_SECRET", "secret")
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)                         // Default
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL) // Default
	assert.Equal(t, "€", cfg.Currency.Symbol)
	assert.Equal(t, ",", cfg.Currency.DecimalSep)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret")
	defer cleanupEnv()

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	defer cleanupEnv()

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("JWT_SECRET", "secret")
	os.Setenv("PORT", "9090")
	os.Setenv("CURRENCY_SYMBOL", "$")
	os.Setenv("CURRENCY_DECIMAL_SEP", ".")
	os.Setenv("CATEGORY_MODEL_PATH", "/var/lib/bankfeed/model.bin")
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, ".", cfg.Currency.DecimalSep)
	assert.Equal(t, "/var/lib/bankfeed/model.bin", cfg.CategoryModelPath)
}

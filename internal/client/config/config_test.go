package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.BaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 7*24*time.Hour, c.TokenTTL)
	assert.Equal(t, TokenStoreSQLite, c.TokenStore)
	assert.Equal(t, "otpgate.db", c.DatabaseDSN)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, TokenStoreSQLite, cfg.TokenStore)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("AUTH_BASE_URL", "https://auth.example.com")
	t.Setenv("AUTH_TOKEN_STORE", "cookie")
	t.Setenv("AUTH_REQUEST_TIMEOUT", "3s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://auth.example.com", cfg.BaseURL)
	assert.Equal(t, TokenStoreCookie, cfg.TokenStore)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "otpgate.db", cfg.DatabaseDSN, "unset variables keep defaults")
}

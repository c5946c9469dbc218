package config

import "time"

// Token store backends. Observed clients of this service disagreed on where
// the token lives; the backend is picked once here instead of per-screen.
const (
	TokenStoreSQLite = "sqlite"
	TokenStoreCookie = "cookie"
)

// Config holds runtime settings for the otpgate client.
//
// Fields:
//   - BaseURL: origin of the remote auth service (no /api/auth suffix).
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenTTL: lifetime of a persisted session token.
//   - TokenStore: which mechanism keeps the token, "sqlite" or "cookie".
//   - DatabaseDSN: sqlite DSN of the local state store.
type Config struct {
	BaseURL        string        `env:"AUTH_BASE_URL"`
	RequestTimeout time.Duration `env:"AUTH_REQUEST_TIMEOUT"`
	TokenTTL       time.Duration `env:"AUTH_TOKEN_TTL"`
	TokenStore     string        `env:"AUTH_TOKEN_STORE"`
	DatabaseDSN    string        `env:"AUTH_DATABASE_DSN"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.TokenTTL = 7 * 24 * time.Hour
	c.TokenStore = TokenStoreSQLite
	c.DatabaseDSN = "otpgate.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

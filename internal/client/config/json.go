package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avoronin/otpgate/internal/flagx"
	"github.com/avoronin/otpgate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	TokenStore     string         `json:"token_store"`
	DatabaseDSN    string         `json:"database_dsn"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. If neither flag is set, nothing is loaded. Fields absent
// from the file keep their current values. Panics on read or unmarshal
// errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = time.Duration(jc.TokenTTL.Duration)
	}
	if jc.TokenStore != "" {
		cfg.TokenStore = jc.TokenStore
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}

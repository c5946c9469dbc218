// Package config loads runtime configuration for the otpgate client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. AUTH_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote auth service
//	-t int      request timeout (seconds)
//	-s string   token store backend: sqlite or cookie
//	-d string   sqlite DSN of the local state store
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://auth.example.com",
//	  "request_timeout": "10s",
//	  "token_ttl": "168h",
//	  "token_store": "sqlite",
//	  "database_dsn": "otpgate.db"
//	}
package config

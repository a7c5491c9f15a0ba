// Package config defines service configuration and its loading order.
//
// Precedence (low -> high):
//  1. defaults (New)
//  2. YAML file (path argument or VACATION_CONFIG)
//  3. environment variables (prefix VACATION_)
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite file; ":memory:" for ephemeral runs.
	DatabasePath string `koanf:"database_path"`

	// JWTSecret signs session tokens. Change it in production;
	// rotating it logs everyone out.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTLMinutes bounds how long a login stays valid.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// AdminUsername / AdminPassword bootstrap the default account on
	// first start. An existing account is never overwritten.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config with development defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		DatabasePath:      "vacation.db",
		JWTSecret:         "dev-secret-change-me",
		SessionTTLMinutes: 12 * 60,
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
		AllowedOrigins:    []string{"http://localhost:5173", "http://localhost:8080"},
	}
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// An explicit path wins over the VACATION_CONFIG env var; an empty path
// with no env var means no file layer at all.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("VACATION_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: VACATION_ADDR, VACATION_DATABASE_PATH, ...
	// Underscores are preserved to match the koanf struct tags.
	envProvider := env.Provider("VACATION_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VACATION_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if c.SessionTTLMinutes <= 0 {
		return errors.New("session_ttl_minutes must be positive")
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return errors.New("admin credentials must not be empty")
	}
	return nil
}

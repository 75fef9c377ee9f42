// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN for the shared override store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AdminCode is the operator shared secret compared in constant time on login
	// and on the x-admin-pass mutation header. Ignored when AdminCodeHash is set.
	AdminCode string `mapstructure:"ADMIN_CODE"`
	// AdminCodeHash is an optional bcrypt hash of the operator secret. When set
	// it takes precedence over ADMIN_CODE, so the plaintext never has to live
	// in the environment.
	AdminCodeHash string `mapstructure:"ADMIN_CODE_HASH"`
	// SessionSigningKey signs admin session tokens (HMAC). Its absence is
	// reported as a 500 by the first request that needs it, not at startup.
	SessionSigningKey string `mapstructure:"SESSION_SIGNING_KEY"`
	// SessionTTLRaw is the admin session lifetime (e.g. "1h").
	SessionTTLRaw string `mapstructure:"SESSION_TTL"`
	// ScheduleFile is the path to the YAML unlock schedule.
	ScheduleFile string `mapstructure:"SCHEDULE_FILE"`
	// OTLPEndpoint enables telemetry export when non-empty (e.g. localhost:4317).
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env. Secrets may legitimately be absent here: per the access
// contract they surface as a 500 on the first request that needs them, not
// as a startup failure.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_CODE", "")
	v.SetDefault("ADMIN_CODE_HASH", "")
	v.SetDefault("SESSION_SIGNING_KEY", "")
	v.SetDefault("SESSION_TTL", "1h")
	v.SetDefault("SCHEDULE_FILE", "schedule.yaml")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.ScheduleFile == "" {
		return nil, errors.New("config: SCHEDULE_FILE must be set")
	}

	return &cfg, nil
}

// SessionTTL parses SessionTTLRaw as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTLRaw)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

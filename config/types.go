package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Session       SessionConfig       `mapstructure:"session"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Display       DisplayConfig       `mapstructure:"display"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	MockAPI       MockAPIConfig       `mapstructure:"mock_api"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type SessionConfig struct {
	Store string `mapstructure:"store"` // file, redis, memory
	Path  string `mapstructure:"path"`  // token file, defaults to <user config dir>/clinic/session
	// EncryptionKey is an optional 32-byte hex string. When set, the token
	// file is sealed with AES-256-GCM.
	EncryptionKey string `mapstructure:"encryption_key"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type DisplayConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	DateTimeFormat string `mapstructure:"datetime_format"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stderr bool          `mapstructure:"stderr"`
	File   FileLogConfig `mapstructure:"file"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/clinic.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Environment    string        `mapstructure:"environment"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type MockAPIConfig struct {
	Port int `mapstructure:"port"`
	// PasswordMemoryKiB tunes argon2id for registered mock users.
	PasswordMemoryKiB  uint32 `mapstructure:"password_memory_kib"`
	PasswordIterations uint32 `mapstructure:"password_iterations"`
	// RateLimit is the request budget per client IP per 30s window. Zero disables it.
	RateLimit int `mapstructure:"rate_limit"`
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}

	switch strings.ToLower(c.Session.Store) {
	case SessionStoreFile, SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when session.store is %q", SessionStoreRedis)
		}
	default:
		return fmt.Errorf("session.store must be %q, %q or %q, got %q",
			SessionStoreFile, SessionStoreRedis, SessionStoreMemory, c.Session.Store)
	}

	if c.Session.EncryptionKey != "" {
		b, err := hex.DecodeString(c.Session.EncryptionKey)
		if err != nil {
			return fmt.Errorf("session.encryption_key is not valid hex: %w", err)
		}
		if len(b) != 32 {
			return fmt.Errorf("session.encryption_key must be 32 bytes (64 hex chars), got %d bytes", len(b))
		}
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}

	return nil
}

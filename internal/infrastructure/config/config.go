package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Trace     TraceConfig
	Static    StaticConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Breaker   BreakerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// TraceConfig holds the location of the served trace file.
type TraceConfig struct {
	Path     string `envconfig:"TRACE_PATH" default:"/data/trace.txt"`
	MaxBytes int64  `envconfig:"TRACE_MAX_BYTES" default:"67108864"`
}

// StaticConfig holds frontend asset configuration.
type StaticConfig struct {
	Dir string `envconfig:"STATIC_DIR" default:"public"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Process-wide cap across all clients; 0 disables it.
	GlobalRequestsPerSecond int `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
	GlobalBurst             int `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0"`
}

// BreakerConfig holds circuit breaker settings for trace storage reads.
type BreakerConfig struct {
	Failures    uint32        `envconfig:"BREAKER_FAILURES" default:"5"`
	Timeout     time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
	HalfOpenMax uint32        `envconfig:"BREAKER_HALF_OPEN_MAX" default:"1"`
	Interval    time.Duration `envconfig:"BREAKER_INTERVAL" default:"60s"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Trace: TraceConfig{
			Path:     "/data/trace.txt",
			MaxBytes: 64 << 20,
		},
		Static: StaticConfig{
			Dir: "public",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Breaker: BreakerConfig{
			Failures:    5,
			Timeout:     30 * time.Second,
			HalfOpenMax: 1,
			Interval:    60 * time.Second,
		},
	}
}

// Package config provides centralized configuration management for the
// server: defaults overridable by environment variables, optionally
// loaded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"redis/internal/aof"
)

// ServerConfig holds listener and connection settings.
type ServerConfig struct {
	Host            string
	Port            int
	MaxConnections  int
	ReadBufferSize  int
	WriteBufferSize int
	ReadTimeout     time.Duration
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Host:            "127.0.0.1",
		Port:            6379,
		MaxConnections:  10000,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ReadTimeout:     60 * time.Second,
	}
}

// ServerFromEnv applies environment variable overrides to the default
// server configuration.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Host = v
	}
	if p := getEnvInt("REDIS_PORT", 0); p > 0 {
		cfg.Port = p
	}
	if mc := getEnvInt("REDIS_MAX_CONNECTIONS", 0); mc > 0 {
		cfg.MaxConnections = mc
	}

	return cfg
}

// MetricsConfig configures the internal Prometheus metrics listener.
// It MUST bind to localhost only; the service exposes no public HTTP
// surface.
type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
}

// DefaultMetrics returns safe defaults for the metrics listener.
func DefaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:9121",
	}
}

// MetricsFromEnv applies environment variable overrides to the metrics
// configuration.
func MetricsFromEnv() MetricsConfig {
	cfg := DefaultMetrics()

	if os.Getenv("METRICS_ENABLED") == "false" {
		cfg.Enabled = false
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	return cfg
}

// RateLimitConfig configures the per-IP connection rate limiter applied
// at accept time.
type RateLimitConfig struct {
	Enabled           bool
	ConnectionsPerSec float64
	Burst             int
	CleanupInterval   time.Duration
}

// DefaultRateLimit returns production-safe defaults.
func DefaultRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           true,
		ConnectionsPerSec: 50,
		Burst:             100,
		CleanupInterval:   5 * time.Minute,
	}
}

// RateLimitFromEnv applies environment variable overrides to the rate
// limit configuration.
func RateLimitFromEnv() RateLimitConfig {
	cfg := DefaultRateLimit()

	if os.Getenv("RATE_LIMIT_ENABLED") == "false" {
		cfg.Enabled = false
	}
	if v := getEnvFloat("RATE_LIMIT_CONN_PER_SEC", -1); v >= 0 {
		cfg.ConnectionsPerSec = v
	}
	if b := getEnvInt("RATE_LIMIT_BURST", 0); b > 0 {
		cfg.Burst = b
	}

	return cfg
}

// NotifyConfig controls keyspace notification delivery, parsed from a
// Redis-style class-flag string (e.g. "Kgl" or "KEA").
type NotifyConfig struct {
	Flags string
}

// DefaultNotify returns keyspace notifications disabled.
func DefaultNotify() NotifyConfig {
	return NotifyConfig{Flags: ""}
}

// NotifyFromEnv applies environment variable overrides to the
// notification configuration.
func NotifyFromEnv() NotifyConfig {
	cfg := DefaultNotify()
	if v := os.Getenv("NOTIFY_KEYSPACE_EVENTS"); v != "" {
		cfg.Flags = v
	}
	return cfg
}

// AOFFromEnv builds an aof.Config from defaults with environment
// variable overrides.
func AOFFromEnv() aof.Config {
	cfg := aof.DefaultConfig()

	if os.Getenv("AOF_ENABLED") == "false" {
		cfg.Enabled = false
	}
	if v := os.Getenv("AOF_FILEPATH"); v != "" {
		cfg.Filepath = v
	}
	switch os.Getenv("AOF_SYNC_POLICY") {
	case "always":
		cfg.SyncPolicy = aof.SyncAlways
	case "no":
		cfg.SyncPolicy = aof.SyncNo
	case "everysec", "":
		// keep default
	}

	return cfg
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Server    ServerConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
	Notify    NotifyConfig
	AOF       aof.Config
}

// Load reads an optional .env file (ignored if absent) and returns the
// complete configuration with environment overrides applied.
func Load() AppConfig {
	_ = godotenv.Load(".env")

	return AppConfig{
		Server:    ServerFromEnv(),
		Metrics:   MetricsFromEnv(),
		RateLimit: RateLimitFromEnv(),
		Notify:    NotifyFromEnv(),
		AOF:       AOFFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

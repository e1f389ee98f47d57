package config

import (
	"os"
	"testing"

	"redis/internal/aof"
)

func TestDefaultServer(t *testing.T) {
	cfg := DefaultServer()
	if cfg.Host != "127.0.0.1" {
		t.Errorf("expected default host 127.0.0.1, got %q", cfg.Host)
	}
	if cfg.Port != 6379 {
		t.Errorf("expected default port 6379, got %d", cfg.Port)
	}
	if cfg.MaxConnections != 10000 {
		t.Errorf("expected default max connections 10000, got %d", cfg.MaxConnections)
	}
}

func TestServerFromEnvOverrides(t *testing.T) {
	os.Setenv("REDIS_HOST", "0.0.0.0")
	os.Setenv("REDIS_PORT", "7000")
	os.Setenv("REDIS_MAX_CONNECTIONS", "42")
	defer func() {
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
		os.Unsetenv("REDIS_MAX_CONNECTIONS")
	}()

	cfg := ServerFromEnv()
	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected host override 0.0.0.0, got %q", cfg.Host)
	}
	if cfg.Port != 7000 {
		t.Errorf("expected port override 7000, got %d", cfg.Port)
	}
	if cfg.MaxConnections != 42 {
		t.Errorf("expected max connections override 42, got %d", cfg.MaxConnections)
	}
}

func TestServerFromEnvIgnoresGarbage(t *testing.T) {
	os.Setenv("REDIS_PORT", "not-a-number")
	defer os.Unsetenv("REDIS_PORT")

	cfg := ServerFromEnv()
	if cfg.Port != 6379 {
		t.Errorf("expected default port on unparseable override, got %d", cfg.Port)
	}
}

func TestMetricsFromEnvDisable(t *testing.T) {
	os.Setenv("METRICS_ENABLED", "false")
	defer os.Unsetenv("METRICS_ENABLED")

	cfg := MetricsFromEnv()
	if cfg.Enabled {
		t.Error("expected metrics disabled when METRICS_ENABLED=false")
	}
}

func TestRateLimitFromEnvOverrides(t *testing.T) {
	os.Setenv("RATE_LIMIT_CONN_PER_SEC", "10.5")
	os.Setenv("RATE_LIMIT_BURST", "5")
	defer func() {
		os.Unsetenv("RATE_LIMIT_CONN_PER_SEC")
		os.Unsetenv("RATE_LIMIT_BURST")
	}()

	cfg := RateLimitFromEnv()
	if cfg.ConnectionsPerSec != 10.5 {
		t.Errorf("expected connections per sec override 10.5, got %v", cfg.ConnectionsPerSec)
	}
	if cfg.Burst != 5 {
		t.Errorf("expected burst override 5, got %d", cfg.Burst)
	}
}

func TestNotifyFromEnv(t *testing.T) {
	cfg := DefaultNotify()
	if cfg.Flags != "" {
		t.Errorf("expected notifications disabled by default, got flags %q", cfg.Flags)
	}

	os.Setenv("NOTIFY_KEYSPACE_EVENTS", "Kgz")
	defer os.Unsetenv("NOTIFY_KEYSPACE_EVENTS")

	cfg = NotifyFromEnv()
	if cfg.Flags != "Kgz" {
		t.Errorf("expected flags override Kgz, got %q", cfg.Flags)
	}
}

func TestAOFFromEnvSyncPolicy(t *testing.T) {
	os.Setenv("AOF_SYNC_POLICY", "always")
	defer os.Unsetenv("AOF_SYNC_POLICY")

	cfg := AOFFromEnv()
	if cfg.SyncPolicy != aof.SyncAlways {
		t.Errorf("expected sync policy SyncAlways, got %v", cfg.SyncPolicy)
	}
}

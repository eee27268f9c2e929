package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BUCKET", "")
	t.Setenv("CACHE_TTL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.StorageBucket != "listing-images" {
		t.Errorf("expected default bucket listing-images, got %q", cfg.StorageBucket)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("expected default cache TTL 1m, got %v", cfg.CacheTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("STORAGE_ENDPOINT", "minio.internal:9000")
	t.Setenv("CACHE_TTL", "30s")

	cfg := Load()
	if cfg.DBHost != "db.internal" {
		t.Errorf("expected DB_HOST honored, got %q", cfg.DBHost)
	}
	if cfg.StorageEndpoint != "minio.internal:9000" {
		t.Errorf("expected STORAGE_ENDPOINT honored, got %q", cfg.StorageEndpoint)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected CACHE_TTL honored, got %v", cfg.CacheTTL)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	cfg := Load()
	if cfg.CacheTTL != time.Minute {
		t.Errorf("expected fallback TTL for bad duration, got %v", cfg.CacheTTL)
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := &Config{
		DBHost:           "localhost",
		DBName:           "postgres",
		StorageEndpoint:  "minio.internal:9000",
		StorageAccessKey: "real-key",
	}
	if !cfg.IsConfigured() {
		t.Error("expected configured with real parameters")
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"placeholder endpoint", func(c *Config) { c.StorageEndpoint = PlaceholderStorageEndpoint }},
		{"placeholder key", func(c *Config) { c.StorageAccessKey = PlaceholderStorageKey }},
		{"empty endpoint", func(c *Config) { c.StorageEndpoint = "" }},
		{"empty db host", func(c *Config) { c.DBHost = "" }},
		{"empty db name", func(c *Config) { c.DBName = "" }},
	}
	for _, tc := range cases {
		c := *cfg
		tc.mutate(&c)
		if c.IsConfigured() {
			t.Errorf("%s: expected unconfigured", tc.name)
		}
	}
}

func TestLoadUnconfiguredByDefault(t *testing.T) {
	t.Setenv("STORAGE_ENDPOINT", "")
	t.Setenv("STORAGE_ACCESS_KEY", "")
	cfg := Load()
	if cfg.IsConfigured() {
		t.Error("placeholder storage defaults must report unconfigured")
	}
}

package config

import (
	"fmt"
	"os"
	"time"
)

// Placeholder values that mean "nobody has configured the storage backend
// yet". The config-check endpoint reports unconfigured while these are in
// effect, but the server still boots so the rest of the API stays usable.
const (
	PlaceholderStorageEndpoint = "storage.example.invalid"
	PlaceholderStorageKey      = "placeholder-key"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	CacheTTL             time.Duration
	CacheRefreshInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "postgres"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", PlaceholderStorageEndpoint),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", PlaceholderStorageKey),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", PlaceholderStorageKey),
		StorageBucket:    getEnv("STORAGE_BUCKET", "listing-images"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",

		CacheTTL:             getDuration("CACHE_TTL", time.Minute),
		CacheRefreshInterval: getDuration("CACHE_REFRESH_INTERVAL", 2*time.Minute),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsConfigured reports whether the required connection parameters are all
// present and none of them is a known placeholder. Read-only; this backs
// the GET /api/config-check endpoint.
func (c *Config) IsConfigured() bool {
	return c.DBHost != "" &&
		c.DBName != "" &&
		c.StorageEndpoint != "" &&
		c.StorageAccessKey != "" &&
		c.StorageEndpoint != PlaceholderStorageEndpoint &&
		c.StorageAccessKey != PlaceholderStorageKey
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

// Package config holds pipeline settings with environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults. Every value can be overridden via a TAHOE_-prefixed env var.
const (
	DefaultContactEmail   = "tahoe-conditions-bot@example.com"
	DefaultRequestTimeout = 15 * time.Second
	DefaultRateLimitDelay = 1500 * time.Millisecond
	DefaultMaxRetries     = 3
	DefaultConditionsTTL  = 15 * time.Minute
	DefaultWeatherTTL     = 60 * time.Minute
	DefaultCacheDir       = ".cache"
	DefaultOutputDir      = "public/data"
	DefaultRegistryPath   = "resorts.yaml"
	DefaultWatchInterval  = 30 * time.Minute
)

// Config bundles all pipeline settings.
type Config struct {
	// ContactEmail identifies us to the NWS API (required by their
	// terms of service); it is embedded in the User-Agent.
	ContactEmail string
	UserAgent    string

	RequestTimeout time.Duration
	RateLimitDelay time.Duration
	MaxRetries     int

	ConditionsTTL time.Duration
	WeatherTTL    time.Duration

	CacheDir     string
	OutputDir    string
	RegistryPath string

	WatchInterval time.Duration
}

// Load reads configuration from the environment with defaults. A .env file
// in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ContactEmail:   getenvDefault("TAHOE_CONTACT_EMAIL", DefaultContactEmail),
		RequestTimeout: getenvDuration("TAHOE_REQUEST_TIMEOUT", DefaultRequestTimeout),
		RateLimitDelay: getenvDuration("TAHOE_RATE_LIMIT_DELAY", DefaultRateLimitDelay),
		MaxRetries:     getenvInt("TAHOE_MAX_RETRIES", DefaultMaxRetries),
		ConditionsTTL:  getenvDuration("TAHOE_CONDITIONS_TTL", DefaultConditionsTTL),
		WeatherTTL:     getenvDuration("TAHOE_WEATHER_TTL", DefaultWeatherTTL),
		CacheDir:       getenvDefault("TAHOE_CACHE_DIR", DefaultCacheDir),
		OutputDir:      getenvDefault("TAHOE_OUTPUT_DIR", DefaultOutputDir),
		RegistryPath:   getenvDefault("TAHOE_REGISTRY", DefaultRegistryPath),
		WatchInterval:  getenvDuration("TAHOE_WATCH_INTERVAL", DefaultWatchInterval),
	}
	cfg.UserAgent = fmt.Sprintf("TahoeConditionsBot/1.0 (%s)", cfg.ContactEmail)

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

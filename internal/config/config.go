package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Seed for today's placeholder set. nil means non-deterministic output.
	Seed *int32

	// Day counts for generated sets.
	DefaultDays int
	MaxDays     int

	// RefreshInterval controls how often today's set is regenerated.
	RefreshInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of sets kept (0 = unlimited)
	StoreMaxAge     time.Duration // max age of sets (0 = unlimited)

	ShutdownTimeout time.Duration
	ClientTimeout   time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{
		Port:      getenvDefault("PORT", "8080"),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogFormat: getenvDefault("LOG_FORMAT", "json"),
	}

	seed, err := parseSeed(os.Getenv("SAMPLE_SEED"))
	if err != nil {
		return nil, err
	}
	cfg.Seed = seed

	if cfg.DefaultDays, err = getenvInt("SAMPLE_DAYS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxDays, err = getenvInt("SAMPLE_MAX_DAYS", 31); err != nil {
		return nil, err
	}
	if cfg.MaxDays < 0 {
		return nil, fmt.Errorf("invalid SAMPLE_MAX_DAYS: must not be negative")
	}
	if cfg.DefaultDays < 0 || (cfg.MaxDays > 0 && cfg.DefaultDays > cfg.MaxDays) {
		return nil, fmt.Errorf("invalid SAMPLE_DAYS: must be between 0 and SAMPLE_MAX_DAYS (%d)", cfg.MaxDays)
	}

	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval < time.Minute {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must be at least 1m")
	}

	// Roughly two days of hourly refreshes.
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 48); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "48h"); err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: must be positive")
	}
	if cfg.ClientTimeout, err = getenvDuration("CLIENT_TIMEOUT", "5s"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseSeed(v string) (*int32, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid SAMPLE_SEED: %w", err)
	}
	seed := int32(n)
	return &seed, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

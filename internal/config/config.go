package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalid is returned (wrapped) when a setting fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Supported database/sql driver names.
const (
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3 (cgo)
	DriverModernc = "sqlite"  // modernc.org/sqlite (pure Go)
)

// Config holds all application configuration.
type Config struct {
	Env      string
	Database DatabaseConfig
	Seed     SeedConfig
	Bench    BenchConfig
	Metrics  MetricsConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string // database/sql driver name
	Path   string // SQLite database file path
	Reset  bool   // drop and recreate the users table when defining the schema
}

// SeedConfig controls the bulk seeder.
type SeedConfig struct {
	Count      int
	BatchSize  int
	RandomSeed uint64 // 0 picks a random seed
}

// BenchConfig controls the benchmark query.
type BenchConfig struct {
	Pattern           string // LIKE pattern matched against full_name
	CaseSensitiveLike bool
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	File string // empty disables the textfile
}

// Load reads an optional .env file and then the environment, applying defaults.
func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	count, err := getEnvInt("SEED_COUNT", 100300)
	if err != nil {
		return nil, err
	}
	batch, err := getEnvInt("SEED_BATCH_SIZE", 10000)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvUint("SEED_RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}
	reset, err := getEnvBool("SCHEMA_RESET", false)
	if err != nil {
		return nil, err
	}
	csLike, err := getEnvBool("BENCH_CASE_SENSITIVE_LIKE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "dev"),
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", DriverMattn),
			Path:   getEnv("DB_PATH", "production.db"),
			Reset:  reset,
		},
		Seed: SeedConfig{
			Count:      count,
			BatchSize:  batch,
			RandomSeed: seed,
		},
		Bench: BenchConfig{
			Pattern:           getEnv("BENCH_PATTERN", "Michael%"),
			CaseSensitiveLike: csLike,
		},
		Metrics: MetricsConfig{
			File: getEnv("METRICS_FILE", ""),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMattn, DriverModernc:
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", ErrInvalid, c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: DB_PATH is empty", ErrInvalid)
	}
	if c.Seed.Count < 0 {
		return fmt.Errorf("%w: SEED_COUNT must be >= 0, got %d", ErrInvalid, c.Seed.Count)
	}
	if c.Seed.BatchSize <= 0 {
		return fmt.Errorf("%w: SEED_BATCH_SIZE must be > 0, got %d", ErrInvalid, c.Seed.BatchSize)
	}
	if c.Bench.Pattern == "" {
		return fmt.Errorf("%w: BENCH_PATTERN is empty", ErrInvalid)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvUint(key string, defaultVal uint64) (uint64, error) {
	if value, exists := os.LookupEnv(key); exists {
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid unsigned integer for %s: %w", key, err)
		}
		return v, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return v, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, DB: %s:%s, Seed: %d/%d, Bench: %q}",
		c.Env, c.Database.Driver, c.Database.Path, c.Seed.Count, c.Seed.BatchSize, c.Bench.Pattern)
}

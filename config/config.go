package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string

	DBDriver           string
	DatabaseURL        string
	DBLogLevel         string
	MaxIdleConns       int
	MaxOpenConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Port:        Get("PORT", "3000"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", DriverPostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBLogLevel:  strings.ToLower(Get("DB_LOG_LEVEL", "warn")),
		LogLevel:    strings.ToLower(Get("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(Get("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.MaxIdleConns, err = intVar("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns, err = intVar("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.ConnMaxLifetime, err = durationVar("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ConnMaxIdleTime, err = durationVar("DB_CONN_MAX_IDLE_TIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SlowQueryThreshold, err = durationVar("SLOW_QUERY_THRESHOLD", 200*time.Millisecond); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL not set")
		}
	case DriverSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = "blogly.db"
		}
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT: expected text or json, got %q", c.LogFormat)
	}

	return nil
}

// Get returns the environment variable or the fallback when unset.
func Get(envVar, fallback string) string {
	if v, ok := os.LookupEnv(envVar); ok && v != "" {
		return v
	}
	return fallback
}

func intVar(envVar string, fallback int) (int, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", envVar, err)
	}
	return n, nil
}

func durationVar(envVar string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", envVar, err)
	}
	return d, nil
}

// Package config provides configuration structures and loading for the fuel price notifier.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the fuel price notifier.
type Config struct {
	// Region used when neither an argument nor a stored value is available
	DefaultRegion string
	// Key under which the region override is persisted
	RegionKey string
	// Base URL of the fuel price site
	BaseURL string
	// Upper bound for the single outbound request
	FetchTimeout time.Duration
	// Extraction strategy (pattern, dom)
	Extractor string
	// Log level (debug, info, warn, error)
	LogLevel string
	// Log format (json, console)
	LogFormat string
	// Output sink (json, text, webhook)
	Output string
	// Webhook endpoint for the webhook sink
	WebhookURL string
	// HTTP server address
	HTTPAddr string
	// Notify hour (0-23) for the run command
	NotifyHour int
	// Region settings store
	Store StoreConfig
}

// StoreConfig holds configuration for the region settings store.
type StoreConfig struct {
	// Backend (file, memory, redis, postgres)
	Backend string
	// Path of the JSON file for the file backend
	Path string
	// Redis address for the redis backend
	RedisAddress string
	// Redis password
	RedisPassword string
	// Redis database number
	RedisDB int
	// PostgreSQL connection string for the postgres backend
	PostgresDSN string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultRegion: "shanxi-3/xian",
		RegionKey:     "yj",
		BaseURL:       "http://m.qiyoujiage.com",
		FetchTimeout:  8 * time.Second,
		Extractor:     "pattern",
		LogLevel:      "info",
		LogFormat:     "json",
		Output:        "json",
		HTTPAddr:      ":8080",
		NotifyHour:    8,
		Store: StoreConfig{
			Backend:      "file",
			Path:         "~/.config/fuelprice/settings.json",
			RedisAddress: "localhost:6379",
		},
	}
}

// LoadEnvFiles loads .env.local and .env into the process environment.
// Missing files are ignored; variables already set are not overwritten.
func LoadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("REGION_DEFAULT"); v != "" {
		c.DefaultRegion = v
	}
	if v := os.Getenv("REGION_KEY"); v != "" {
		c.RegionKey = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("EXTRACTOR"); v != "" {
		c.Extractor = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("NOTIFY_HOUR"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 && i <= 23 {
			c.NotifyHour = i
		}
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		c.Store.RedisAddress = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Store.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Store.RedisDB = i
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Store.PostgresDSN = v
	}
}

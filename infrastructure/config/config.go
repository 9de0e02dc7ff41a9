// Package config holds the client's configuration: static settings resolved
// once at startup from environment variables and an optional YAML file, and
// dynamic overrides hot-reloaded from disk (see watcher.go).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all static client configuration
type Config struct {
	// Environment selects logger behavior: "development" or "production"
	Environment string `yaml:"environment"`

	// API endpoint
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// GroceryTimeout covers the long-running grocery generation call
	GroceryTimeout time.Duration `yaml:"grocery_timeout"`

	// Local persistence
	StoragePath string `yaml:"storage_path"`

	// Cache windows
	RecommendationTTL time.Duration `yaml:"recommendation_ttl"`
	SelectionLockTTL  time.Duration `yaml:"selection_lock_ttl"`

	// Recipe list page size
	RecipePageSize int `yaml:"recipe_page_size"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableBreaker bool `yaml:"enable_breaker"`

	// Tracing
	ServiceName     string `yaml:"service_name"`
	TracingEndpoint string `yaml:"tracing_endpoint"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// LoadConfig resolves configuration from the environment, with an optional
// YAML file (GROCIDISH_CONFIG_FILE) applied first so env vars win.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("GROCIDISH_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Environment = getEnv("GROCIDISH_ENV", cfg.Environment)
	cfg.BaseURL = getEnv("GROCIDISH_API_URL", cfg.BaseURL)
	cfg.StoragePath = getEnv("GROCIDISH_STORAGE_PATH", cfg.StoragePath)
	cfg.LogLevel = getEnv("GROCIDISH_LOG_LEVEL", cfg.LogLevel)
	cfg.ServiceName = getEnv("GROCIDISH_SERVICE_NAME", cfg.ServiceName)
	cfg.TracingEndpoint = getEnv("GROCIDISH_TRACING_ENDPOINT", cfg.TracingEndpoint)
	cfg.EnableMetrics = getEnvBool("GROCIDISH_ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("GROCIDISH_ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableBreaker = getEnvBool("GROCIDISH_ENABLE_BREAKER", cfg.EnableBreaker)
	cfg.RecipePageSize = getEnvInt("GROCIDISH_RECIPE_PAGE_SIZE", cfg.RecipePageSize)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment:       "development",
		BaseURL:           "http://localhost:4000",
		RequestTimeout:    10 * time.Second,
		GroceryTimeout:    6 * time.Minute,
		StoragePath:       "grocidish-store.json",
		RecommendationTTL: 24 * time.Hour,
		SelectionLockTTL:  24 * time.Hour,
		RecipePageSize:    10,
		ServiceName:       "grocidish-client",
		LogLevel:          "info",
	}
}

// applyFile overlays YAML settings from path onto the config.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that required configuration is present and sane.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.GroceryTimeout < c.RequestTimeout {
		return fmt.Errorf("grocery timeout must be at least the request timeout")
	}
	if c.RecommendationTTL <= 0 || c.SelectionLockTTL <= 0 {
		return fmt.Errorf("cache windows must be positive")
	}
	if c.RecipePageSize <= 0 {
		return fmt.Errorf("recipe page size must be positive")
	}
	if c.EnableTracing && c.TracingEndpoint == "" {
		return fmt.Errorf("tracing endpoint is required when tracing is enabled")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

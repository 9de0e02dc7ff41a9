package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 6*time.Minute, cfg.GroceryTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RecommendationTTL)
	assert.Equal(t, 24*time.Hour, cfg.SelectionLockTTL)
	assert.Equal(t, 10, cfg.RecipePageSize)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GROCIDISH_API_URL", "https://api.grocidish.example")
	t.Setenv("GROCIDISH_ENV", "production")
	t.Setenv("GROCIDISH_RECIPE_PAGE_SIZE", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.grocidish.example", cfg.BaseURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 25, cfg.RecipePageSize)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://file.example\nlog_level: debug\n"), 0o600))
	t.Setenv("GROCIDISH_CONFIG_FILE", path)
	t.Setenv("GROCIDISH_API_URL", "https://env.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// Env wins over the file; file wins over defaults.
	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.GroceryTimeout = time.Second
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.EnableTracing = true
	assert.Error(t, cfg.Validate())

	cfg.TracingEndpoint = "localhost:4317"
	assert.NoError(t, cfg.Validate())
}

func TestDynamicConfig_LoadAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeouts:\n  requestSeconds: 15\ncache:\n  recommendationHours: 12\nversion: \"2\"\n"), 0o600))

	cfg, err := loadDynamicConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Timeouts.RequestSeconds)
	assert.Equal(t, 12, cfg.Cache.RecommendationHours)
	assert.Equal(t, "2", cfg.Version)

	require.NoError(t, os.WriteFile(path, []byte("timeouts:\n  requestSeconds: -1\n"), 0o600))
	_, err = loadDynamicConfig(path)
	assert.Error(t, err)
}

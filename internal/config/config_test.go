package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
// It mirrors testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config file in reach

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "finassist.db", cfg.Database.Path)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 0.7, cfg.Gemini.Temperature)
	assert.Equal(t, 2048, cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, 30, cfg.Gemini.TimeoutSeconds)
	assert.Equal(t, "data", cfg.Records.Directory)
	assert.True(t, cfg.Notify.Enabled)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FINASSIST_LOG_LEVEL", "debug")
	t.Setenv("FINASSIST_SERVER_ADDRESS", ":9090")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("log:\n  level: warn\ngemini:\n  temperature: 0.2\n")
	require.NoError(t, os.WriteFile(dir+"/config.yaml", content, 0o644))
	chdir(t, dir)

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0.2, cfg.Gemini.Temperature)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"temperature out of range", func(c *Config) { c.Gemini.Temperature = 3 }},
		{"zero max tokens", func(c *Config) { c.Gemini.MaxOutputTokens = 0 }},
		{"timeout too large", func(c *Config) { c.Gemini.TimeoutSeconds = 9000 }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func validBaseConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Database.Path = "test.db"
	cfg.Gemini.Temperature = 0.7
	cfg.Gemini.MaxOutputTokens = 2048
	cfg.Gemini.TimeoutSeconds = 30
	return cfg
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

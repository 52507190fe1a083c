// Package config provides Viper-based hierarchical configuration management
// for the assistant backend: defaults, then an optional YAML config file,
// then environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadEnv loads variables from a local .env file when one exists. A missing
// file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Address string `mapstructure:"address" yaml:"address"`
	} `mapstructure:"server" yaml:"server"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Gemini struct {
		Model           string  `mapstructure:"model" yaml:"model"`
		Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`
		MaxOutputTokens int     `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
		TimeoutSeconds  int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey          string  `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"gemini" yaml:"gemini"`

	Records struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"records" yaml:"records"`

	Notify struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"notify" yaml:"notify"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finassist")
	v.AddConfigPath(".finassist")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("FINASSIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. The API key always comes from the conventional unprefixed variable
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.address", ":8080")

	v.SetDefault("database.path", "finassist.db")

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.max_output_tokens", 2048)
	v.SetDefault("gemini.timeout_seconds", 30)

	v.SetDefault("records.directory", "data")

	v.SetDefault("notify.enabled", true)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Gemini.Temperature < 0 || config.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2, got: %f", config.Gemini.Temperature)
	}

	if config.Gemini.MaxOutputTokens < 1 {
		return fmt.Errorf("gemini.max_output_tokens must be positive, got: %d", config.Gemini.MaxOutputTokens)
	}

	if config.Gemini.TimeoutSeconds < 1 || config.Gemini.TimeoutSeconds > 300 {
		return fmt.Errorf("gemini.timeout_seconds must be between 1 and 300, got: %d", config.Gemini.TimeoutSeconds)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Server ServerConfig
	Fetch  FetchConfig
	Gemini GeminiConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// FetchConfig holds outbound HTTP settings.
type FetchConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	ExtractTimeout    time.Duration `mapstructure:"extract_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// GeminiConfig holds settings for the optional structuring step. An empty
// APIKey disables it.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Default returns the default configuration without consulting files or
// the environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Environment: "development",
		},
		Fetch: FetchConfig{
			Timeout:           20 * time.Second,
			ExtractTimeout:    2 * time.Minute,
			UserAgent:         "Mozilla/5.0 (compatible; InsightsFetcher/1.0; +https://example.com/bot)",
			RequestsPerSecond: 8.0,
		},
	}
}

// Load loads configuration from an optional config file and INSIGHTS_*
// environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	v.SetDefault("fetch.timeout", "20s")
	v.SetDefault("fetch.extract_timeout", "2m")
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; InsightsFetcher/1.0; +https://example.com/bot)")
	v.SetDefault("fetch.requests_per_second", 8.0)
}

func validateConfig(config *Config) error {
	if config.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got: %s", config.Fetch.Timeout)
	}
	if config.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got: %f", config.Fetch.RequestsPerSecond)
	}
	return nil
}

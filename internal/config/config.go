// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	Port             int           `mapstructure:"PORT"`
	APIURL           string        `mapstructure:"API_URL"`
	DBURL            string        `mapstructure:"DB_URL"`
	MigrationsURL    string        `mapstructure:"MIGRATIONS_URL"`
	GithubAPIURL     string        `mapstructure:"GITHUB_API_URL"`
	GithubToken      string        `mapstructure:"GITHUB_TOKEN"`
	SyncInterval     time.Duration `mapstructure:"SYNC_INTERVAL"`
	SyncSingleFlight bool          `mapstructure:"SYNC_SINGLE_FLIGHT"`
}

// LoadConfig reads configuration from a .env file in the working directory
// and/or environment variables. Environment variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", 3000)
	v.SetDefault("API_URL", "http://localhost:3000/api")
	v.SetDefault("DB_URL", "")
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("SYNC_INTERVAL", "60m")
	v.SetDefault("SYNC_SINGLE_FLIGHT", false)

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.GithubAPIURL = strings.TrimRight(cfg.GithubAPIURL, "/")

	return &cfg, nil
}

// Validate checks the fields the service needs to start.
func (c *Config) Validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is a required configuration field")
	}
	if c.GithubAPIURL == "" {
		return errors.New("GITHUB_API_URL must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}
	if c.SyncInterval <= 0 {
		return errors.New("SYNC_INTERVAL must be a positive duration (e.g. 60m)")
	}
	return nil
}

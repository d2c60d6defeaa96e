package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort     string  `mapstructure:"SERVER_PORT"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	BaseURL        string  `mapstructure:"BASE_URL"`
	TrendingURL    string  `mapstructure:"TRENDING_URL"`
	RequestTimeout int     `mapstructure:"REQUEST_TIMEOUT"`
	MaxRetries     int     `mapstructure:"MAX_RETRIES"`
	RetryBaseDelay float64 `mapstructure:"RETRY_BASE_DELAY"`
	MinDelay       float64 `mapstructure:"MIN_DELAY"`
	MaxDelay       float64 `mapstructure:"MAX_DELAY"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BASE_URL", "https://github.com")
	viper.SetDefault("TRENDING_URL", "https://github.com/trending")
	viper.SetDefault("REQUEST_TIMEOUT", 30) // in seconds
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("RETRY_BASE_DELAY", 5.0) // in seconds
	viper.SetDefault("MIN_DELAY", 3.0)
	viper.SetDefault("MAX_DELAY", 8.0)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

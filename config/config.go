package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	OpenFoodFacts OpenFoodFactsConfig
	Log           LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds product API configuration
type OpenFoodFactsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"` // any zap level name
}

var environments = []string{"development", "test", "production"}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/soychecker/")

	// SOYCHECKER_SERVER_PORT -> server.port
	v.SetEnvPrefix("SOYCHECKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.net/api/v2")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set SOYCHECKER_SERVER_PORT)")
	}

	if !isKnownEnvironment(config.Server.Environment) {
		return fmt.Errorf("environment must be one of %s, got: %s",
			strings.Join(environments, ", "), config.Server.Environment)
	}

	u, err := url.Parse(config.OpenFoodFacts.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("Open Food Facts base URL must be an absolute http(s) URL, got: %q", config.OpenFoodFacts.BaseURL)
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Log.Level, err)
	}

	return nil
}

func isKnownEnvironment(env string) bool {
	for _, known := range environments {
		if env == known {
			return true
		}
	}
	return false
}

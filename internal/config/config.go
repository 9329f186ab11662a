package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	pushover "github.com/peteraglen/pushover-go-client"
)

var envBindings = map[string]string{
	"pushover.user":     "PUSHOVER_USER",
	"pushover.token":    "PUSHOVER_TOKEN",
	"pushover.endpoint": "PUSHOVER_ENDPOINT",
	"pushover.timeout":  "PUSHOVER_TIMEOUT",
	"defaults.sound":    "PUSHOVER_SOUND",
	"logging.level":     "PUSHOVER_LOG_LEVEL",
	"logging.format":    "PUSHOVER_LOG_FORMAT",
}

// Load loads the configuration from file and environment. With an empty
// configPath a missing file is not an error, so credentials may come from
// the environment alone.
func Load(configPath string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pushover")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pushover"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("pushover.endpoint", pushover.APIEndpoint)
	v.SetDefault("pushover.timeout", "30s")

	v.SetDefault("defaults.priority", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Pushover.User == "" {
		return fmt.Errorf("pushover.user is required (or set PUSHOVER_USER)")
	}

	if cfg.Pushover.Token == "" {
		return fmt.Errorf("pushover.token is required (or set PUSHOVER_TOKEN)")
	}

	if cfg.Pushover.Timeout < 0 {
		return fmt.Errorf("pushover.timeout must be non-negative")
	}

	if cfg.Defaults.Sound != "" {
		if _, err := pushover.ParseSound(cfg.Defaults.Sound); err != nil {
			return fmt.Errorf("invalid defaults.sound: %w", err)
		}
	}

	if !pushover.Priority(cfg.Defaults.Priority).Valid() {
		return fmt.Errorf("invalid defaults.priority: %d (must be between -2 and 2)", cfg.Defaults.Priority)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

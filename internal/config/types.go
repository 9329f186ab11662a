package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Pushover PushoverConfig `mapstructure:"pushover"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PushoverConfig holds the API credentials and transport settings
type PushoverConfig struct {
	User     string        `mapstructure:"user"`
	Token    string        `mapstructure:"token"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DefaultsConfig holds message settings applied when a flag is not given
type DefaultsConfig struct {
	Devices  []string `mapstructure:"devices"`
	Sound    string   `mapstructure:"sound"`
	Priority int      `mapstructure:"priority"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

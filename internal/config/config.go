// Package config loads YAML configuration for the command-line tools.
package config

import (
	"log/slog"
	"time"
)

// Config is the top-level configuration for the cmd tools.
type Config struct {
	API     APIConfig    `yaml:"api"`
	Socket  SocketConfig `yaml:"socket"`
	Log     LogConfig    `yaml:"log"`
	Markets []string     `yaml:"markets"`
}

// APIConfig configures the REST client and the account-feed credentials.
type APIConfig struct {
	Key     string        `yaml:"key"`
	Secret  string        `yaml:"secret"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SocketConfig configures the streaming client.
type SocketConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// Config holds the settings read from the JSON config file.
type Config struct {
	LogLevel      string `json:"log_level"`
	DatabasePath  string `json:"database_path"`
	DefaultWindow int    `json:"default_window"`
	DefaultLength int    `json:"default_length"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		DatabasePath:  "./charkov.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		DefaultWindow: 4,
		DefaultLength: 500,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.DefaultWindow < 1 {
		return nil, fmt.Errorf("invalid config: default_window must be positive, got %d", config.DefaultWindow)
	}
	if config.DefaultLength < 0 {
		return nil, fmt.Errorf("invalid config: default_length must not be negative, got %d", config.DefaultLength)
	}
	return config, nil
}

// parseLogLevel maps a config level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

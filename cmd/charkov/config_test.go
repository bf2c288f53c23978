package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charkov.json")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if *config != *DefaultConfig() {
		t.Errorf("expected default config, got %+v", config)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected default config file to be written: %v", err)
	}
	var written Config
	if err := json.Unmarshal(data, &written); err != nil {
		t.Fatalf("written config is not valid JSON: %v", err)
	}
	if written != *DefaultConfig() {
		t.Errorf("written config = %+v, want defaults", written)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charkov.json")
	if err := os.WriteFile(path, []byte(`{"default_window": 7, "log_level": "debug"}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.DefaultWindow != 7 || config.LogLevel != "debug" {
		t.Errorf("overrides not applied: %+v", config)
	}
	if config.DefaultLength != DefaultConfig().DefaultLength {
		t.Errorf("expected unset fields to keep defaults, got %+v", config)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Malformed JSON", content: `{"default_window": `},
		{name: "Zero window", content: `{"default_window": 0}`},
		{name: "Negative length", content: `{"default_length": -1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "charkov.json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected an error but got none")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for name, want := range testCases {
		if got := parseLogLevel(name); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

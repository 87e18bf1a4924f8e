package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Notifications.PollIntervalSec != 30 {
		t.Errorf("PollIntervalSec = %d, want 30", cfg.Notifications.PollIntervalSec)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  base_url: https://shoutbox.internal\nnotifications:\n  poll_interval_sec: 10\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.BaseURL != "https://shoutbox.internal" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Notifications.PollIntervalSec != 10 {
		t.Errorf("PollIntervalSec = %d, want 10", cfg.Notifications.PollIntervalSec)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Display.Theme != "default" {
		t.Errorf("Theme = %q", cfg.Display.Theme)
	}
}

func TestLoadConfigRejectsNonPositiveInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("notifications:\n  poll_interval_sec: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Notifications.PollIntervalSec != 30 {
		t.Errorf("PollIntervalSec = %d, want the 30s floor", cfg.Notifications.PollIntervalSec)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Server.BaseURL = "https://recognition.example.com"
	cfg.CachePath = "/tmp/shoutbox.db"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("BaseURL = %q", loaded.Server.BaseURL)
	}
	if loaded.CachePath != cfg.CachePath {
		t.Errorf("CachePath = %q", loaded.CachePath)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/app"
	"github.com/ndtran/shoutbox/internal/credential"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/notify"
	"github.com/ndtran/shoutbox/internal/session"
	"github.com/ndtran/shoutbox/internal/store"
)

func main() {
	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	// First run: write the defaults out so there is a file to edit.
	if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
		_ = model.SaveConfig(cfgPath, cfg)
	}

	applyTheme(cfg.Display.Theme)

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = model.DefaultCachePath()
	}

	cache, err := store.NewSQLiteStore(cachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening cache at %s: %v\n", cachePath, err)
		os.Exit(1)
	}
	defer cache.Close()

	client := api.NewClient(cfg.Server.BaseURL)
	guard := session.New(client, credential.KeyringStore{})

	pollInterval := notify.DefaultPollInterval
	if cfg.Notifications.PollIntervalSec > 0 {
		pollInterval = time.Duration(cfg.Notifications.PollIntervalSec) * time.Second
	}

	p := tea.NewProgram(
		app.New(client, cache, guard, pollInterval),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// applyTheme pins the adaptive palette to one background. "default"
// keeps terminal detection.
func applyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

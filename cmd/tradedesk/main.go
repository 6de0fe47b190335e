package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tradedesk/internal/api"
	"github.com/jask/tradedesk/internal/config"
	"github.com/jask/tradedesk/internal/suggest"
	"github.com/jask/tradedesk/internal/trade"
	"github.com/jask/tradedesk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !config.Exists() {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("write default config: %v", err)
		}
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if cfg.Log.Path != "" {
		f, err := tea.LogToFile(cfg.Log.Path, "tradedesk")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	presets, err := trade.LoadPresets(cfg.UI.PresetsPath)
	if err != nil {
		log.Printf("warn: using built-in presets: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	var cache suggest.Cache
	if cfg.Cache.RedisURL != "" {
		rc, err := suggest.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			log.Printf("warn: lookup cache disabled: %v", err)
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	p := tea.NewProgram(tui.New(ctx, cfg, client, presets, cache), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pingpong/internal/config"
	"pingpong/internal/league"
	"pingpong/internal/menu"
	"pingpong/internal/records"
	"pingpong/internal/storage"
	"pingpong/internal/tracker"
)

// Set during build using ldflags.
var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	verifyFlag := flag.Bool("verify", false, "Compare the saved player table with the match log and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("pingpong version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger := newLogger(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		config.Exitf("create data dir: %v", err)
	}

	var store tracker.Store
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := storage.New(cfg.DatabasePath())
		if err != nil {
			config.Exitf("open database: %v", err)
		}
		defer db.Close()
		store = db
	default:
		store = records.NewFileStore(cfg.DataDir, cfg.MatchFile, cfg.PlayerFile, logger)
	}

	t := tracker.New(store, tracker.Options{
		Limits: league.Limits{MaxMatches: cfg.MaxMatches, MaxPlayers: cfg.MaxPlayers},
		Logger: logger,
	})
	report := t.Load()

	m := menu.New(t, menu.Options{
		In:         os.Stdin,
		Out:        os.Stdout,
		Color:      menu.UseColor(cfg.Color, os.Stdout),
		Clear:      menu.IsTerminal(os.Stdout) && !*verifyFlag,
		DateFormat: cfg.DateFormat,
	})
	m.ShowLoadReport(report)

	if *verifyFlag {
		drift, err := t.Verify()
		if err != nil {
			logger.Error("verify failed", "err", err)
			os.Exit(1)
		}
		m.ShowDrift(drift)
		return
	}

	if err := m.Run(); err != nil {
		// Deferred Close does not run past os.Exit.
		if c, ok := store.(*storage.Store); ok {
			c.Close()
		}
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning", "":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

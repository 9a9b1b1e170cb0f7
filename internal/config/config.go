// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends accepted by PINGPONG_STORE.
const (
	StoreFiles  = "files"
	StoreSQLite = "sqlite"
)

// Config is the process configuration, read from PINGPONG_* variables.
type Config struct {
	DataDir    string `env:"PINGPONG_DATA_DIR" envDefault:"."`
	MatchFile  string `env:"PINGPONG_MATCH_FILE" envDefault:"matches.txt"`
	PlayerFile string `env:"PINGPONG_PLAYER_FILE" envDefault:"players.txt"`
	Store      string `env:"PINGPONG_STORE" envDefault:"files"`
	DBPath     string `env:"PINGPONG_DB_PATH" envDefault:"pingpong.db"`
	MaxMatches int    `env:"PINGPONG_MAX_MATCHES" envDefault:"0"`
	MaxPlayers int    `env:"PINGPONG_MAX_PLAYERS" envDefault:"0"`
	LogLevel   string `env:"PINGPONG_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string `env:"PINGPONG_LOG_FORMAT" envDefault:"text"`
	DateFormat string `env:"PINGPONG_DATE_FORMAT" envDefault:"%d/%m/%Y"`
	Color      string `env:"PINGPONG_COLOR" envDefault:"auto"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFromEnv parses cfg from the given variables only.
func LoadFromEnv(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store {
	case StoreFiles, StoreSQLite:
	default:
		return errors.New("PINGPONG_STORE: must be one of files, sqlite")
	}
	if c.MaxMatches < 0 {
		return errors.New("PINGPONG_MAX_MATCHES: must be >= 0")
	}
	if c.MaxPlayers < 0 {
		return errors.New("PINGPONG_MAX_PLAYERS: must be >= 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("PINGPONG_LOG_LEVEL: must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("PINGPONG_LOG_FORMAT: must be text or json")
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.New("PINGPONG_COLOR: must be one of auto, always, never")
	}
	if c.MatchFile == "" || c.PlayerFile == "" {
		return errors.New("PINGPONG_MATCH_FILE, PINGPONG_PLAYER_FILE: must not be empty")
	}
	if c.MatchFile == c.PlayerFile {
		return errors.New("PINGPONG_MATCH_FILE: must differ from PINGPONG_PLAYER_FILE")
	}
	return nil
}

// DatabasePath resolves DBPath against DataDir.
func (c Config) DatabasePath() string {
	if c.DBPath == ":memory:" || filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, c.DBPath)
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package records

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"pingpong/internal/league"
)

// PersistenceError reports which file could not be read or written.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FileStore keeps the league in a match file and a player file. The player
// file is output only; LoadMatches never reads it.
type FileStore struct {
	MatchPath  string
	PlayerPath string
	Logger     *slog.Logger
}

// NewFileStore places both files in dir.
func NewFileStore(dir, matchFile, playerFile string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		MatchPath:  filepath.Join(dir, matchFile),
		PlayerPath: filepath.Join(dir, playerFile),
		Logger:     logger,
	}
}

// LoadMatches decodes the match file. A missing file yields an error
// wrapping fs.ErrNotExist.
func (s *FileStore) LoadMatches() ([]league.Match, error) {
	f, err := os.Open(s.MatchPath)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: s.MatchPath, Err: err}
	}
	defer f.Close()

	dec, err := DecodeMatches(f)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.MatchPath, Err: err}
	}
	if dec.StoppedAt > 0 {
		s.logger().Warn("match file truncated at malformed record",
			"path", s.MatchPath, "line", dec.StoppedAt, "reason", dec.StopReason, "matches", len(dec.Matches))
	}
	return dec.Matches, nil
}

// LoadPlayers decodes the player file as it was last written.
func (s *FileStore) LoadPlayers() ([]league.Player, error) {
	f, err := os.Open(s.PlayerPath)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: s.PlayerPath, Err: err}
	}
	defer f.Close()

	players, err := DecodePlayers(f)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.PlayerPath, Err: err}
	}
	return players, nil
}

// Save rewrites both files from the given state.
func (s *FileStore) Save(matches []league.Match, players []league.Player) error {
	if err := writeFile(s.MatchPath, func(w io.Writer) error { return EncodeMatches(w, matches) }); err != nil {
		return err
	}
	if err := writeFile(s.PlayerPath, func(w io.Writer) error { return EncodePlayers(w, players) }); err != nil {
		return err
	}
	s.logger().Info("league saved", "matches", len(matches), "players", len(players),
		"match_path", s.MatchPath, "player_path", s.PlayerPath)
	return nil
}

func (s *FileStore) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Op: "create", Path: path, Err: err}
	}
	if err := encode(f); err != nil {
		f.Close()
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: "close", Path: path, Err: err}
	}
	return nil
}

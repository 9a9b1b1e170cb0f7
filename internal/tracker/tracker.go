// Package tracker owns the live league: it replays storage on startup,
// serializes mutations and writes the league back on save.
package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"pingpong/internal/league"
)

// Store persists the match log and the derived player table.
type Store interface {
	LoadMatches() ([]league.Match, error)
	Save(matches []league.Match, players []league.Player) error
}

// PlayerSource is implemented by stores that can read back the saved
// player table.
type PlayerSource interface {
	LoadPlayers() ([]league.Player, error)
}

// ErrNoPlayerTable is returned by Verify when the store cannot read back
// saved players.
var ErrNoPlayerTable = errors.New("store does not keep a player table")

// ErrUnreadStore is returned by Save after Load failed to read existing
// data, so the unread data is not overwritten.
var ErrUnreadStore = errors.New("store could not be read on load")

// Options configures a Tracker.
type Options struct {
	Limits league.Limits
	Logger *slog.Logger
}

// Tracker is the single owner of league state. All methods are safe for
// concurrent use; each mutation is one critical section.
type Tracker struct {
	mu     sync.Mutex
	league *league.League
	limits league.Limits
	store  Store
	logger *slog.Logger
	// readErr is the last Load error other than a missing store.
	readErr error
}

// New creates a tracker with an empty league.
func New(store Store, opts Options) *Tracker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		league: league.New(opts.Limits),
		limits: opts.Limits,
		store:  store,
		logger: logger,
	}
}

// Skipped is a stored match that was not admitted on load.
type Skipped struct {
	Seq    int
	Match  league.Match
	Reason string
}

// LoadReport describes the outcome of Load.
type LoadReport struct {
	Loaded  int
	Skipped []Skipped
	// Fresh is set when nothing could be read and the league starts empty.
	Fresh bool
	// Err is why the store could not be read, if it could not.
	Err error
}

// Load replaces the current state with a replay of the stored match log.
// Statistics are always derived from the matches; a saved player table is
// never trusted. Read failures leave an empty league and are reported, not
// returned.
func (t *Tracker) Load() LoadReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.league = league.New(t.limits)
	t.readErr = nil
	matches, err := t.store.LoadMatches()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.logger.Info("no existing match data, starting fresh", "err", err)
		} else {
			t.readErr = err
			t.logger.Warn("could not read match data, starting fresh", "err", err)
		}
		return LoadReport{Fresh: true, Err: err}
	}

	var report LoadReport
	for i, m := range matches {
		if _, err := t.league.Restore(m); err != nil {
			report.Skipped = append(report.Skipped, Skipped{Seq: i, Match: m, Reason: err.Error()})
			t.logger.Warn("skipping stored match", "seq", i, "reason", err)
			if errors.Is(err, league.ErrCapacity) {
				for j := i + 1; j < len(matches); j++ {
					report.Skipped = append(report.Skipped, Skipped{Seq: j, Match: matches[j], Reason: err.Error()})
				}
				break
			}
			continue
		}
		report.Loaded++
	}
	report.Fresh = report.Loaded == 0
	t.logger.Info("match data loaded", "matches", report.Loaded, "skipped", len(report.Skipped), "players", t.league.Players.Len())
	return report
}

// AddMatch validates and records a new match, returning its index in the log.
func (t *Tracker) AddMatch(m league.Match) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, err := t.league.Add(m)
	if err != nil {
		return 0, err
	}
	t.logger.Debug("match added", "index", idx, "player1", m.Player1, "player2", m.Player2)
	return idx, nil
}

// Rankings returns players ordered by wins.
func (t *Tracker) Rankings() []league.Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.league.Rankings()
}

// History returns a player's summary; unknown names yield league.ErrNotFound.
func (t *Tracker) History(name string) (league.PlayerSummary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.league.History(name)
}

// Players returns all players in first-appearance order.
func (t *Tracker) Players() []league.Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.league.Players.Players()
}

// Matches returns the match log.
func (t *Tracker) Matches() []league.Match {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.league.Matches.All()
}

// Save writes the current matches and derived player table to the store.
// It refuses with ErrUnreadStore if the last Load could not read the store.
func (t *Tracker) Save() error {
	t.mu.Lock()
	matches := t.league.Matches.All()
	players := t.league.Players.Players()
	readErr := t.readErr
	t.mu.Unlock()

	if readErr != nil {
		t.logger.Error("save skipped, existing data was not read", "err", readErr)
		return fmt.Errorf("save league: %w: %v", ErrUnreadStore, readErr)
	}

	if err := t.store.Save(matches, players); err != nil {
		t.logger.Error("save failed", "err", err)
		return fmt.Errorf("save league: %w", err)
	}
	return nil
}

// Drift is a difference between the saved player table and the statistics
// derived from the match log. Stored or Derived is nil when the player is
// missing on that side.
type Drift struct {
	Name    string
	Stored  *league.Player
	Derived *league.Player
}

// Verify compares the store's saved player table with the derived one.
func (t *Tracker) Verify() ([]Drift, error) {
	src, ok := t.store.(PlayerSource)
	if !ok {
		return nil, ErrNoPlayerTable
	}
	stored, err := src.LoadPlayers()
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	derived := t.Players()

	byKey := make(map[string]league.Player, len(stored))
	for _, p := range stored {
		byKey[league.CanonicalName(p.Name)] = p
	}

	var drift []Drift
	for _, d := range derived {
		d := d // per-iteration copy: &d is retained below
		key := league.CanonicalName(d.Name)
		s, ok := byKey[key]
		delete(byKey, key)
		switch {
		case !ok:
			drift = append(drift, Drift{Name: d.Name, Derived: &d})
		case s.Wins != d.Wins || s.Losses != d.Losses || s.MatchesPlayed != d.MatchesPlayed:
			drift = append(drift, Drift{Name: d.Name, Stored: &s, Derived: &d})
		}
	}
	for _, s := range stored {
		s := s // per-iteration copy: &s is retained below
		if _, ok := byKey[league.CanonicalName(s.Name)]; ok {
			drift = append(drift, Drift{Name: s.Name, Stored: &s})
		}
	}
	return drift, nil
}

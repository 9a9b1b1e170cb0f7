// Package league holds the in-memory table tennis league: players, the
// match log, and the projections derived from them.
package league

import "github.com/google/uuid"

const (
	// MaxScore is the highest score either side can record.
	MaxScore = 21
	// MaxNameLen bounds a player name, in characters.
	MaxNameLen = 49
	// MaxDateLen bounds the date token, in characters.
	MaxDateLen = 10
)

// Player is one league member and their aggregate record.
type Player struct {
	ID            uuid.UUID
	Name          string
	Wins          int
	Losses        int
	MatchesPlayed int
}

// Match is one completed game between two named players.
type Match struct {
	Player1 string
	Score1  int
	Player2 string
	Score2  int
	Date    string
}

// Player1Won reports whether player 1 has the strictly higher score.
// Equal scores count as a player 2 win; Log.Append refuses them, but
// restored matches may still carry them.
func (m Match) Player1Won() bool {
	return m.Score1 > m.Score2
}

// Winner returns the winning and losing names.
func (m Match) Winner() (winner, loser string) {
	if m.Player1Won() {
		return m.Player1, m.Player2
	}
	return m.Player2, m.Player1
}

// Involves reports whether name plays either side, under the same
// case-insensitive identity the registry uses.
func (m Match) Involves(name string) bool {
	key := CanonicalName(name)
	return CanonicalName(m.Player1) == key || CanonicalName(m.Player2) == key
}

// League is the single owner of the registry and the match log. It is not
// safe for concurrent use.
type League struct {
	Players *Registry
	Matches *Log
}

// Limits caps league growth. Zero means unbounded.
type Limits struct {
	MaxMatches int
	MaxPlayers int
}

// New creates an empty league.
func New(limits Limits) *League {
	return &League{
		Players: NewRegistry(limits.MaxPlayers),
		Matches: NewLog(limits.MaxMatches),
	}
}

// Add validates m, appends it and updates player statistics. On error
// nothing is mutated.
func (l *League) Add(m Match) (int, error) {
	m = normalize(m)
	if err := Validate(m); err != nil {
		return 0, err
	}
	if err := l.Players.checkCapacity(m.Player1, m.Player2); err != nil {
		return 0, err
	}
	idx, err := l.Matches.Append(m)
	if err != nil {
		return 0, err
	}
	return idx, ApplyMatch(l.Players, m)
}

// Restore admits a match read back from storage. Only the score range
// and distinct players are checked, so legacy ties replay unchanged.
func (l *League) Restore(m Match) (int, error) {
	if err := validateStored(m); err != nil {
		return 0, err
	}
	if err := l.Players.checkCapacity(m.Player1, m.Player2); err != nil {
		return 0, err
	}
	idx, err := l.Matches.restore(m)
	if err != nil {
		return 0, err
	}
	return idx, ApplyMatch(l.Players, m)
}

// Rankings orders the current players by wins.
func (l *League) Rankings() []Player {
	return Rank(l.Players)
}

// History looks up a player and their matches.
func (l *League) History(query string) (PlayerSummary, error) {
	return Lookup(l.Players, l.Matches, query)
}

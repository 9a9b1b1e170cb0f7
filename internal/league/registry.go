package league

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry holds every player seen so far, in first-appearance order.
type Registry struct {
	limit   int
	players []Player
	byKey   map[string]int
	byID    map[uuid.UUID]int
}

// NewRegistry creates an empty registry. limit <= 0 means unbounded.
func NewRegistry(limit int) *Registry {
	return &Registry{
		limit: limit,
		byKey: make(map[string]int),
		byID:  make(map[uuid.UUID]int),
	}
}

// FindOrCreate returns the id of the player called name, registering a
// new player with zeroed stats if the name has not been seen.
func (r *Registry) FindOrCreate(name string) (uuid.UUID, error) {
	key := CanonicalName(name)
	if i, ok := r.byKey[key]; ok {
		return r.players[i].ID, nil
	}
	if r.limit > 0 && len(r.players) >= r.limit {
		return uuid.Nil, fmt.Errorf("%w: registry holds %d players", ErrPlayerCapacity, r.limit)
	}
	p := Player{ID: PlayerID(name), Name: DisplayName(name)}
	r.byKey[key] = len(r.players)
	r.byID[p.ID] = len(r.players)
	r.players = append(r.players, p)
	return p.ID, nil
}

// RecordOutcome credits a win to winner and a loss to loser. Both ids
// must come from FindOrCreate.
func (r *Registry) RecordOutcome(winner, loser uuid.UUID) {
	w, ok := r.byID[winner]
	if !ok {
		panic(fmt.Sprintf("league: unknown winner id %s", winner))
	}
	l, ok := r.byID[loser]
	if !ok {
		panic(fmt.Sprintf("league: unknown loser id %s", loser))
	}
	r.players[w].Wins++
	r.players[w].MatchesPlayed++
	r.players[l].Losses++
	r.players[l].MatchesPlayed++
}

// Find returns the player called name.
func (r *Registry) Find(name string) (Player, bool) {
	i, ok := r.byKey[CanonicalName(name)]
	if !ok {
		return Player{}, false
	}
	return r.players[i], true
}

// Get returns a player by id.
func (r *Registry) Get(id uuid.UUID) (Player, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Player{}, false
	}
	return r.players[i], true
}

// Players returns a copy of all players in first-appearance order.
func (r *Registry) Players() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// Len returns the number of registered players.
func (r *Registry) Len() int {
	return len(r.players)
}

// checkCapacity fails if registering the unseen names among names would
// exceed the limit.
func (r *Registry) checkCapacity(names ...string) error {
	if r.limit <= 0 {
		return nil
	}
	fresh := make(map[string]bool, len(names))
	for _, n := range names {
		key := CanonicalName(n)
		if _, ok := r.byKey[key]; !ok {
			fresh[key] = true
		}
	}
	if len(r.players)+len(fresh) > r.limit {
		return fmt.Errorf("%w: registry holds %d players", ErrPlayerCapacity, r.limit)
	}
	return nil
}

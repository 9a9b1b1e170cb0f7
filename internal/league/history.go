package league

import "fmt"

// HistoryEntry is one match from a player's point of view.
type HistoryEntry struct {
	Index    int
	Match    Match
	Opponent string
	Won      bool
}

// PlayerSummary is a player's record together with every match they played.
type PlayerSummary struct {
	Player  Player
	Matches []HistoryEntry
}

// Lookup finds the player named query, ignoring case, and collects their
// matches in log order. An unknown name returns ErrNotFound; a known player
// with no matches returns an empty Matches slice.
func Lookup(r *Registry, l *Log, query string) (PlayerSummary, error) {
	p, ok := r.Find(query)
	if !ok {
		return PlayerSummary{}, fmt.Errorf("player %q: %w", DisplayName(query), ErrNotFound)
	}
	out := PlayerSummary{Player: p, Matches: []HistoryEntry{}}
	for i, m := range l.matches {
		if !m.Involves(p.Name) {
			continue
		}
		winner, _ := m.Winner()
		e := HistoryEntry{Index: i, Match: m, Won: SameName(winner, p.Name)}
		if SameName(m.Player1, p.Name) {
			e.Opponent = m.Player2
		} else {
			e.Opponent = m.Player1
		}
		out.Matches = append(out.Matches, e)
	}
	return out, nil
}

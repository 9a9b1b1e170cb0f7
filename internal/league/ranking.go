package league

import (
	"cmp"
	"slices"
)

// Rank returns every player ordered by wins, most first. Players with equal
// wins keep their registration order.
func Rank(r *Registry) []Player {
	out := r.Players()
	slices.SortStableFunc(out, func(a, b Player) int {
		return cmp.Compare(b.Wins, a.Wins)
	})
	return out
}

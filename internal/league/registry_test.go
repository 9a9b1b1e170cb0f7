package league

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFindOrCreate(t *testing.T) {
	r := NewRegistry(0)

	alice, err := r.FindOrCreate("Alice")
	require.NoError(t, err)
	bob, err := r.FindOrCreate("Bob")
	require.NoError(t, err)
	again, err := r.FindOrCreate("Alice")
	require.NoError(t, err)

	assert.Equal(t, alice, again)
	assert.NotEqual(t, alice, bob)
	assert.Equal(t, 2, r.Len())

	p, ok := r.Get(alice)
	require.True(t, ok)
	assert.Equal(t, Player{ID: alice, Name: "Alice"}, p)
}

func TestRegistryIdentityIgnoresCase(t *testing.T) {
	r := NewRegistry(0)

	first, err := r.FindOrCreate("Alice Smith")
	require.NoError(t, err)
	second, err := r.FindOrCreate("  alice   SMITH ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.Len())

	p, ok := r.Find("ALICE SMITH")
	require.True(t, ok)
	assert.Equal(t, "Alice Smith", p.Name, "first spelling is kept for display")
}

func TestRegistryIDsAreStable(t *testing.T) {
	a, err := NewRegistry(0).FindOrCreate("Carol")
	require.NoError(t, err)
	b, err := NewRegistry(0).FindOrCreate("carol")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, PlayerID("CAROL"), a)
}

func TestRegistryRecordOutcome(t *testing.T) {
	r := NewRegistry(0)
	w, _ := r.FindOrCreate("Winner")
	l, _ := r.FindOrCreate("Loser")

	r.RecordOutcome(w, l)
	r.RecordOutcome(w, l)
	r.RecordOutcome(l, w)

	pw, _ := r.Get(w)
	pl, _ := r.Get(l)
	assert.Equal(t, 2, pw.Wins)
	assert.Equal(t, 1, pw.Losses)
	assert.Equal(t, 3, pw.MatchesPlayed)
	assert.Equal(t, 1, pl.Wins)
	assert.Equal(t, 2, pl.Losses)
	assert.Equal(t, 3, pl.MatchesPlayed)
}

func TestRegistryRecordOutcomeUnknownPanics(t *testing.T) {
	r := NewRegistry(0)
	known, _ := r.FindOrCreate("Known")
	assert.Panics(t, func() { r.RecordOutcome(known, PlayerID("Stranger")) })
}

func TestRegistryCapacity(t *testing.T) {
	r := NewRegistry(2)
	_, err := r.FindOrCreate("A")
	require.NoError(t, err)
	_, err = r.FindOrCreate("B")
	require.NoError(t, err)

	_, err = r.FindOrCreate("C")
	assert.True(t, errors.Is(err, ErrCapacity), "got %v", err)
	assert.True(t, errors.Is(err, ErrPlayerCapacity), "got %v", err)
	assert.Equal(t, 2, r.Len())

	_, err = r.FindOrCreate("a")
	assert.NoError(t, err, "existing players are still found when full")
}

func TestRegistryPlayersIsACopy(t *testing.T) {
	r := NewRegistry(0)
	r.FindOrCreate("A")

	ps := r.Players()
	ps[0].Wins = 99

	p, _ := r.Find("A")
	assert.Zero(t, p.Wins)
}

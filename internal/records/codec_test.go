package records

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong/internal/league"
)

func TestEncodeMatchesFormat(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeMatches(&buf, []league.Match{
		{Player1: "Alice", Score1: 21, Player2: "Bob", Score2: 10, Date: "01/02/2024"},
		{Player1: "Mary Ann", Score1: 3, Player2: "Li", Score2: 21, Date: "2/3/24"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice 21 Bob 10 01/02/2024\nMary_Ann 3 Li 21 2/3/24\n", buf.String())
}

func TestEncodeMatchesRejectsUnrepresentable(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeMatches(&buf, []league.Match{{Player1: "A\tB", Score1: 1, Player2: "C", Score2: 2, Date: "d"}})
	assert.True(t, errors.Is(err, ErrUnrepresentable), "got %v", err)

	err = EncodeMatches(&buf, []league.Match{{Player1: "A", Score1: 1, Player2: "C", Score2: 2, Date: ""}})
	assert.True(t, errors.Is(err, ErrUnrepresentable), "got %v", err)
}

func TestDecodeMatches(t *testing.T) {
	in := "Alice 21 Bob 10 01/02/2024\n\n   \nMary_Ann 3 Li 21 2/3/24\n"
	dec, err := DecodeMatches(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []league.Match{
		{Player1: "Alice", Score1: 21, Player2: "Bob", Score2: 10, Date: "01/02/2024"},
		{Player1: "Mary Ann", Score1: 3, Player2: "Li", Score2: 21, Date: "2/3/24"},
	}, dec.Matches)
	assert.Equal(t, []int{1, 4}, dec.Lines)
	assert.Zero(t, dec.StoppedAt)
}

func TestDecodeMatchesStopsAtMalformedLine(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "Alice 21 Bob 10"},
		{"too many fields", "Alice 21 Bob 10 01/02/2024 extra"},
		{"non numeric score", "Alice twenty Bob 10 01/02/2024"},
		{"long name", strings.Repeat("x", 50) + " 21 Bob 10 01/02/2024"},
		{"long date", "Alice 21 Bob 10 01/02/20245"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "Alice 21 Bob 10 01/02/2024\n" + tt.line + "\nCarol 21 Dan 5 03/02/2024\n"
			dec, err := DecodeMatches(strings.NewReader(in))
			require.NoError(t, err)
			require.Len(t, dec.Matches, 1)
			assert.Equal(t, 2, dec.StoppedAt)
			assert.NotEmpty(t, dec.StopReason)
		})
	}
}

func TestDecodeMatchesStopsAtOversizedLine(t *testing.T) {
	in := "Alice 21 Bob 10 01/02/2024\nCarol 21 Dan 5 03/02/2024\n" +
		strings.Repeat("x", 70000) + " 21 Bob 10 d\nEve 21 Fay 3 d\n"
	dec, err := DecodeMatches(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, dec.Matches, 2)
	assert.Equal(t, 3, dec.StoppedAt)
	assert.Equal(t, "line too long", dec.StopReason)
}

func TestDecodePlayersStopsAtOversizedLine(t *testing.T) {
	in := "Alice 1 0 1\n" + strings.Repeat("x", 70000) + " 1 0 1\n"
	got, err := DecodePlayers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
}

func TestNameEscaping(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"Mary Ann", "Mary_Ann"},
		{"J_Doe", `J\_Doe`},
		{`back\slash`, `back\\slash`},
		{"a _b", `a_\_b`},
		{"R2-D2.", "R2-D2."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := encodeName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.tok, tok)
			assert.Equal(t, tt.name, decodeName(tok))
		})
	}
	assert.Equal(t, `trailing\`, decodeName(`trailing\`))
}

func TestDecodeMatchesLimitsApplyToDecodedNames(t *testing.T) {
	// 49 underscores escape to 98 runes on disk but decode to 49.
	long := strings.Repeat("_", league.MaxNameLen)
	tok, err := encodeName(long)
	require.NoError(t, err)
	dec, err := DecodeMatches(strings.NewReader(tok + " 21 Bob 10 01/02/2024\n"))
	require.NoError(t, err)
	require.Zero(t, dec.StoppedAt, dec.StopReason)
	assert.Equal(t, long, dec.Matches[0].Player1)
}

func TestDecodeMatchesKeepsOutOfRangeScores(t *testing.T) {
	// Range checks belong to the league; the codec only parses.
	dec, err := DecodeMatches(strings.NewReader("Alice 25 Bob 10 d\nCarol 1 Dan 21 d\n"))
	require.NoError(t, err)
	require.Len(t, dec.Matches, 2)
	assert.Equal(t, 25, dec.Matches[0].Score1)
}

func TestMatchesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZéÑ0123456789_-.'\\%")
	name := func() string {
		n := 1 + rng.Intn(league.MaxNameLen)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = letters[rng.Intn(len(letters))]
			if i > 0 && i < n-1 && rng.Intn(8) == 0 {
				rs[i] = ' '
			}
		}
		return string(rs)
	}

	edge := league.Match{
		Player1: strings.Repeat("é", league.MaxNameLen),
		Score1:  league.MaxScore,
		Player2: strings.Repeat("_", league.MaxNameLen),
		Score2:  0,
		Date:    "2024-02-01",
	}

	for trial := 0; trial < 50; trial++ {
		log := []league.Match{edge}
		for i := rng.Intn(20); i > 0; i-- {
			log = append(log, league.Match{
				Player1: name(),
				Score1:  rng.Intn(league.MaxScore + 1),
				Player2: name(),
				Score2:  rng.Intn(league.MaxScore + 1),
				Date:    "01/02/2024"[:1+rng.Intn(league.MaxDateLen)],
			})
		}

		var buf bytes.Buffer
		require.NoError(t, EncodeMatches(&buf, log))
		dec, err := DecodeMatches(&buf)
		require.NoError(t, err)
		require.Zero(t, dec.StoppedAt, dec.StopReason)
		assert.Equal(t, log, dec.Matches)
	}
}

func TestPlayersRoundTrip(t *testing.T) {
	players := []league.Player{
		{ID: league.PlayerID("Alice Smith"), Name: "Alice Smith", Wins: 3, Losses: 1, MatchesPlayed: 4},
		{ID: league.PlayerID("Bob"), Name: "Bob", Losses: 2, MatchesPlayed: 2},
		{ID: league.PlayerID("J_Doe"), Name: "J_Doe", Wins: 1, MatchesPlayed: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodePlayers(&buf, players))
	assert.Equal(t, "Alice_Smith 3 1 4\nBob 0 2 2\nJ\\_Doe 1 0 1\n", buf.String())

	got, err := DecodePlayers(&buf)
	require.NoError(t, err)
	assert.Equal(t, players, got)
}

func TestDecodePlayersStopsAtMalformedLine(t *testing.T) {
	got, err := DecodePlayers(strings.NewReader("Alice 1 0 1\nBob x 0 1\nCarol 0 1 1\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
}

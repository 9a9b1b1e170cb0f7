// Package records reads and writes the flat, line-per-record match and
// player files.
package records

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"pingpong/internal/league"
)

// ErrUnrepresentable is returned when a field cannot be written as a
// single whitespace-free token.
var ErrUnrepresentable = errors.New("unrepresentable field")

// Decoded is the result of reading a match file.
type Decoded struct {
	Matches []league.Match
	// Lines holds the source line of each entry in Matches.
	Lines []int
	// StoppedAt is the line of the first malformed record, or 0 if the
	// whole input was consumed.
	StoppedAt  int
	StopReason string
}

// EncodeMatches writes one "player1 score1 player2 score2 date" line per match.
func EncodeMatches(w io.Writer, matches []league.Match) error {
	bw := bufio.NewWriter(w)
	for i, m := range matches {
		p1, err := encodeName(m.Player1)
		if err != nil {
			return fmt.Errorf("match %d player1: %w", i, err)
		}
		p2, err := encodeName(m.Player2)
		if err != nil {
			return fmt.Errorf("match %d player2: %w", i, err)
		}
		if !isToken(m.Date) {
			return fmt.Errorf("match %d date %q: %w", i, m.Date, ErrUnrepresentable)
		}
		if _, err := fmt.Fprintf(bw, "%s %d %s %d %s\n", p1, m.Score1, p2, m.Score2, m.Date); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeMatches reads match lines until EOF or the first malformed line.
// A malformed line is not an error: the matches before it are returned and
// the stop is reported in Decoded.
func DecodeMatches(r io.Reader) (Decoded, error) {
	var out Decoded
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		m, err := parseMatch(fields)
		if err != nil {
			out.StoppedAt = line
			out.StopReason = err.Error()
			return out, nil
		}
		out.Matches = append(out.Matches, m)
		out.Lines = append(out.Lines, line)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			out.StoppedAt = line + 1
			out.StopReason = "line too long"
			return out, nil
		}
		return out, fmt.Errorf("read matches: %w", err)
	}
	return out, nil
}

func parseMatch(fields []string) (league.Match, error) {
	if len(fields) != 5 {
		return league.Match{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	s1, err := strconv.Atoi(fields[1])
	if err != nil {
		return league.Match{}, fmt.Errorf("score1 %q is not a number", fields[1])
	}
	s2, err := strconv.Atoi(fields[3])
	if err != nil {
		return league.Match{}, fmt.Errorf("score2 %q is not a number", fields[3])
	}
	p1, p2 := decodeName(fields[0]), decodeName(fields[2])
	for _, name := range []string{p1, p2} {
		if utf8.RuneCountInString(name) > league.MaxNameLen {
			return league.Match{}, fmt.Errorf("name %q longer than %d characters", name, league.MaxNameLen)
		}
	}
	if utf8.RuneCountInString(fields[4]) > league.MaxDateLen {
		return league.Match{}, fmt.Errorf("date %q longer than %d characters", fields[4], league.MaxDateLen)
	}
	return league.Match{
		Player1: p1,
		Score1:  s1,
		Player2: p2,
		Score2:  s2,
		Date:    fields[4],
	}, nil
}

// EncodePlayers writes one "name wins losses matchesPlayed" line per player.
func EncodePlayers(w io.Writer, players []league.Player) error {
	bw := bufio.NewWriter(w)
	for _, p := range players {
		name, err := encodeName(p.Name)
		if err != nil {
			return fmt.Errorf("player %q: %w", p.Name, err)
		}
		if _, err := fmt.Fprintf(bw, "%s %d %d %d\n", name, p.Wins, p.Losses, p.MatchesPlayed); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodePlayers reads player lines until EOF or the first malformed line.
func DecodePlayers(r io.Reader) ([]league.Player, error) {
	var out []league.Player
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			break
		}
		var nums [3]int
		ok := true
		for i := range nums {
			n, err := strconv.Atoi(fields[i+1])
			if err != nil {
				ok = false
				break
			}
			nums[i] = n
		}
		if !ok {
			break
		}
		name := decodeName(fields[0])
		out = append(out, league.Player{
			ID:            league.PlayerID(name),
			Name:          name,
			Wins:          nums[0],
			Losses:        nums[1],
			MatchesPlayed: nums[2],
		})
	}
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return out, fmt.Errorf("read players: %w", err)
	}
	return out, nil
}

var nameEscaper = strings.NewReplacer(`\`, `\\`, "_", `\_`, " ", "_")

// encodeName keeps a name one token: spaces become underscores, and
// literal underscores and backslashes are escaped with a backslash.
func encodeName(name string) (string, error) {
	tok := nameEscaper.Replace(name)
	if !isToken(tok) {
		return "", fmt.Errorf("name %q: %w", name, ErrUnrepresentable)
	}
	return tok, nil
}

func decodeName(tok string) string {
	if !strings.ContainsAny(tok, `_\`) {
		return tok
	}
	var b strings.Builder
	b.Grow(len(tok))
	escaped := false
	for _, r := range tok {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '_':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

func isToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

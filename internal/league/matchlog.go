package league

import (
	"fmt"
	"strings"
)

// Log is the append-only, ordered record of admitted matches.
type Log struct {
	limit   int
	matches []Match
}

// NewLog creates an empty log. limit <= 0 means unbounded.
func NewLog(limit int) *Log {
	return &Log{limit: limit}
}

// Validate checks a candidate match and returns the first rule it breaks.
func Validate(m Match) error {
	if err := validateScores(m); err != nil {
		return err
	}
	if err := validateName("player1", m.Player1); err != nil {
		return err
	}
	if err := validateName("player2", m.Player2); err != nil {
		return err
	}
	if SameName(m.Player1, m.Player2) {
		return invalid("player2", "player names must be different")
	}
	if m.Score1 == m.Score2 {
		return invalid("score2", "scores cannot be tied")
	}
	return validateDate(m.Date)
}

// validateStored is the subset of Validate applied when replaying storage.
func validateStored(m Match) error {
	if err := validateScores(m); err != nil {
		return err
	}
	if SameName(m.Player1, m.Player2) {
		return invalid("player2", "player names must be different")
	}
	return nil
}

func validateScores(m Match) error {
	if m.Score1 < 0 || m.Score1 > MaxScore {
		return invalid("score1", fmt.Sprintf("must be between 0 and %d", MaxScore))
	}
	if m.Score2 < 0 || m.Score2 > MaxScore {
		return invalid("score2", fmt.Sprintf("must be between 0 and %d", MaxScore))
	}
	return nil
}

func validateName(field, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid(field, "name is required")
	case nameLen(name) > MaxNameLen:
		return invalid(field, fmt.Sprintf("at most %d characters", MaxNameLen))
	case !ValidName(name):
		return invalid(field, "use letters and spaces only")
	}
	return nil
}

func validateDate(date string) error {
	switch {
	case date == "":
		return invalid("date", "date is required")
	case nameLen(date) > MaxDateLen:
		return invalid("date", fmt.Sprintf("at most %d characters", MaxDateLen))
	case strings.ContainsAny(date, " \t\r\n"):
		return invalid("date", "must not contain spaces")
	}
	return nil
}

// normalize tidies user-entered fields before validation.
func normalize(m Match) Match {
	m.Player1 = DisplayName(m.Player1)
	m.Player2 = DisplayName(m.Player2)
	m.Date = strings.TrimSpace(m.Date)
	return m
}

// Append admits m if it validates and the log has room, returning its
// sequential index.
func (l *Log) Append(m Match) (int, error) {
	if err := Validate(m); err != nil {
		return 0, err
	}
	return l.restore(m)
}

func (l *Log) restore(m Match) (int, error) {
	if l.limit > 0 && len(l.matches) >= l.limit {
		return 0, fmt.Errorf("%w: match log holds %d matches", ErrMatchCapacity, l.limit)
	}
	l.matches = append(l.matches, m)
	return len(l.matches) - 1, nil
}

// Len returns the number of admitted matches.
func (l *Log) Len() int {
	return len(l.matches)
}

// At returns the match at index i.
func (l *Log) At(i int) Match {
	return l.matches[i]
}

// All returns a copy of the log in admission order.
func (l *Log) All() []Match {
	out := make([]Match, len(l.matches))
	copy(out, l.matches)
	return out
}

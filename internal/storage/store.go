package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"pingpong/internal/league"
)

// Store handles SQLite persistence of the league.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			seq       INTEGER PRIMARY KEY,
			player1   TEXT NOT NULL,
			score1    INTEGER NOT NULL,
			player2   TEXT NOT NULL,
			score2    INTEGER NOT NULL,
			played_on TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS players (
			position       INTEGER PRIMARY KEY,
			name           TEXT NOT NULL UNIQUE,
			wins           INTEGER NOT NULL,
			losses         INTEGER NOT NULL,
			matches_played INTEGER NOT NULL
		);
	`)
	return err
}

// LoadMatches returns every stored match in recorded order.
func (s *Store) LoadMatches() ([]league.Match, error) {
	rows, err := s.db.Query("SELECT player1, score1, player2, score2, played_on FROM matches ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	var result []league.Match
	for rows.Next() {
		var m league.Match
		if err := rows.Scan(&m.Player1, &m.Score1, &m.Player2, &m.Score2, &m.Date); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// LoadPlayers returns the player table as it was last saved.
func (s *Store) LoadPlayers() ([]league.Player, error) {
	rows, err := s.db.Query("SELECT name, wins, losses, matches_played FROM players ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()
	var result []league.Player
	for rows.Next() {
		var p league.Player
		if err := rows.Scan(&p.Name, &p.Wins, &p.Losses, &p.MatchesPlayed); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.ID = league.PlayerID(p.Name)
		result = append(result, p)
	}
	return result, rows.Err()
}

// Save replaces both tables with the given state in one transaction.
func (s *Store) Save(matches []league.Match, players []league.Player) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	for i, m := range matches {
		if _, err := tx.Exec(
			"INSERT INTO matches (seq, player1, score1, player2, score2, played_on) VALUES (?, ?, ?, ?, ?, ?)",
			i, m.Player1, m.Score1, m.Player2, m.Score2, m.Date,
		); err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
	}
	for i, p := range players {
		if _, err := tx.Exec(
			"INSERT INTO players (position, name, wins, losses, matches_played) VALUES (?, ?, ?, ?, ?)",
			i, p.Name, p.Wins, p.Losses, p.MatchesPlayed,
		); err != nil {
			return fmt.Errorf("insert player %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

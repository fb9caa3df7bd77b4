// Package storage provides an SQLite-backed archive of finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The database lives in memory and is gone when the process exits.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-arena/internal/multiplayer"
)

// ErrNotFound is returned when a match ID is not in the archive.
var ErrNotFound = errors.New("storage: match not found")

// Store manages the SQLite connection of the match archive.
// It is safe for concurrent use by several sessions.
type Store struct {
	db *sql.DB
}

// MatchRecord is one archived match.
type MatchRecord struct {
	MatchID   string
	GameID    string
	Session   string
	Mode      string
	Players   int
	Seed      int64
	Winner    int // 0 when there is no winner
	EndReason string
	Turns     int
	Apples    int
	Recording []byte // JSON encoded replay script
	CreatedAt time.Time
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	MatchID   string
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Open creates an empty in-memory archive and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			session TEXT NOT NULL,
			mode TEXT NOT NULL,
			players INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			apples INTEGER NOT NULL DEFAULT 0,
			recording BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(game_id, apples DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch archives a finished match.
func (s *Store) SaveMatch(rec MatchRecord) error {
	if rec.MatchID == "" {
		return errors.New("storage: match ID is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, game_id, session, mode, players, seed, winner, end_reason, turns, apples, recording)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.GameID,
		rec.Session,
		rec.Mode,
		rec.Players,
		rec.Seed,
		rec.Winner,
		rec.EndReason,
		rec.Turns,
		rec.Apples,
		rec.Recording,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}
	return nil
}

const matchColumns = `match_id, game_id, session, mode, players, seed, winner,
		end_reason, turns, apples, recording, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var createdAt any
	err := row.Scan(
		&rec.MatchID,
		&rec.GameID,
		&rec.Session,
		&rec.Mode,
		&rec.Players,
		&rec.Seed,
		&rec.Winner,
		&rec.EndReason,
		&rec.Turns,
		&rec.Apples,
		&rec.Recording,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves an archived match.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// LoadRecording returns the encoded replay script of a match.
func (s *Store) LoadRecording(matchID string) ([]byte, error) {
	rec, err := s.MatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if len(rec.Recording) == 0 {
		return nil, fmt.Errorf("storage: match %s has no recording", matchID)
	}
	return rec.Recording, nil
}

// RecentMatches retrieves the most recent matches across all games.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// TopScores retrieves the top N apple counts for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT match_id, game_id, apples, created_at
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY apples DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.MatchID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest apple count for the given game.
// Returns 0 if no matches exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(apples) FROM matches WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearMatches deletes all matches of the given game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
// Converts MatchResultData to MatchRecord and saves it.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	return s.SaveMatch(MatchRecord{
		MatchID:   string(data.MatchID),
		GameID:    data.GameID,
		Session:   string(data.Session),
		Mode:      data.Mode.String(),
		Players:   data.Players,
		Seed:      data.Seed,
		Winner:    int(data.Winner),
		EndReason: data.EndReason,
		Turns:     data.Turns,
		Apples:    data.Apples,
		Recording: data.Recording,
	})
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

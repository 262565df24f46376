// Package storage persists finished matches in SQLite.
// Uses the pure-Go modernc.org/sqlite driver so the headless tools build without CGO.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pthm-cable/shatter/telemetry"
)

// Store manages the SQLite connection for match results.
type Store struct {
	db *sql.DB
}

// MatchRecord is a stored match result.
type MatchRecord struct {
	ID     int64
	Mode   string // "play", "run" or "serve"
	Player string
	telemetry.MatchSummary
}

// Stats aggregates all stored matches of one mode.
type Stats struct {
	Matches   int
	HighScore int
	AvgScore  float64
	AvgTicks  float64
}

// Open creates or opens the database at path, creating parent directories
// and running migrations. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			duration_sec REAL NOT NULL,
			score INTEGER NOT NULL,
			health INTEGER NOT NULL,
			destroyed INTEGER NOT NULL,
			spawns INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			ended_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(mode, score DESC);
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

// SaveMatch records a finished match and returns its row ID.
func (s *Store) SaveMatch(ctx context.Context, mode, player string, m telemetry.MatchSummary) (int64, error) {
	endedAt := m.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO matches
		 (mode, player, seed, ticks, duration_sec, score, health, destroyed, spawns, shots, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mode, player, m.Seed, m.Ticks, m.DurationSec, m.Score, m.Health,
		m.Destroyed, m.Spawns, m.Shots, endedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit matches of the given mode, best score
// first. Ties go to the shorter match. An empty mode matches all modes.
func (s *Store) TopScores(ctx context.Context, mode string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, player, seed, ticks, duration_sec, score, health, destroyed, spawns, shots, ended_at
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY score DESC, ticks ASC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var endedAt string
		if err := rows.Scan(
			&r.ID, &r.Mode, &r.Player,
			&r.Seed, &r.Ticks, &r.DurationSec, &r.Score, &r.Health,
			&r.Destroyed, &r.Spawns, &r.Shots, &endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, endedAt); err == nil {
			r.EndedAt = t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the best score for mode, or 0 when nothing is stored.
func (s *Store) HighScore(ctx context.Context, mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM matches WHERE mode = ?", mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ModeStats aggregates the stored matches of mode.
func (s *Store) ModeStats(ctx context.Context, mode string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(AVG(ticks), 0)
		 FROM matches WHERE mode = ?`,
		mode,
	).Scan(&st.Matches, &st.HighScore, &st.AvgScore, &st.AvgTicks)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

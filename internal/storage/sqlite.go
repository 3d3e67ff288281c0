// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one recorded run. Config and Frames are opaque encoded
// payloads owned by the replay package; list queries leave them empty.
type RunEntry struct {
	ID         int64
	GameID     string
	Seed       int64
	Config     []byte // YAML runner configuration
	Frames     []byte // Encoded per-frame input log
	FrameCount int
	Distance   float64
	Coins      int
	Duration   float64 // Simulated seconds
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config BLOB NOT NULL,
			frames BLOB NOT NULL,
			frame_count INTEGER NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
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

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, seed, config, frames, frame_count, distance, coins, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GameID, e.Seed, e.Config, e.Frames, e.FrameCount, e.Distance, e.Coins, e.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ListRuns returns the most recent runs, newest first, without their
// payloads. An empty gameID lists every game.
func (s *Store) ListRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, frame_count, distance, coins, duration_secs, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &e.FrameCount, &e.Distance, &e.Coins, &e.Duration, &createdAt); err != nil {
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

// LoadRun returns a run with its payloads.
func (s *Store) LoadRun(id int64) (*RunEntry, error) {
	var e RunEntry
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, config, frames, frame_count, distance, coins, duration_secs, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.GameID, &e.Seed, &e.Config, &e.Frames, &e.FrameCount, &e.Distance, &e.Coins, &e.Duration, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(id int64) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// ClearRuns deletes every run of the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// CountRuns returns the number of stored runs for a game.
func (s *Store) CountRuns(gameID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return count, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a per-item log of processed inputs in a SQLite
// database under the axe data directory.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/axe/pkg/types"
)

const dbFile = "history.db"

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dataDir/history.db and
// creates the schema if it does not exist.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			processed_at TEXT NOT NULL,
			input TEXT NOT NULL,
			kind TEXT NOT NULL,
			outcome TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_processed_at ON items(processed_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append records one processed item.
func (s *Store) Append(rec types.ItemRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO items (processed_at, input, kind, outcome) VALUES (?, ?, ?, ?)`,
		rec.When.UTC().Format(time.RFC3339), rec.Input, rec.Kind, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("recording history item: %w", err)
	}
	return nil
}

// Recent returns the most recently processed items, newest first, capped
// at limit (20 when limit is not positive).
func (s *Store) Recent(limit int) ([]types.ItemRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT processed_at, input, kind, outcome FROM items ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.ItemRecord
	for rows.Next() {
		var rec types.ItemRecord
		var ts string
		if err := rows.Scan(&ts, &rec.Input, &rec.Kind, &rec.Outcome); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			rec.When = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

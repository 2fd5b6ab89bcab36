// Package store persists the navigation history stack between runs so a
// session resumes where it left off. Page fragments are never stored.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store is a sqlite-backed history store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(path string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create directories: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	// sqlite allows one writer; a single connection queues saves instead of
	// failing them with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	goose.SetLogger(gooseLogger{logger})
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the saved session with entries and the cursor index.
func (s *Store) Save(ctx context.Context, entries []string, index int) error {
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("save history: index %d out of range (%d entries)", index, len(entries))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	for i, path := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO history_entries (position, path) VALUES (?, ?)
		`, i, path); err != nil {
			return fmt.Errorf("failed to save history entry %d: %w", i, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO history_cursor (id, position, saved_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET position = excluded.position, saved_at = excluded.saved_at
	`, index); err != nil {
		return fmt.Errorf("failed to save history cursor: %w", err)
	}

	return tx.Commit()
}

// Load returns the saved session. It returns no entries when nothing has
// been saved.
func (s *Store) Load(ctx context.Context) ([]string, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM history_entries ORDER BY position ASC
	`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, 0, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, path)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return nil, 0, nil
	}

	var index int
	err = s.db.QueryRowContext(ctx, `SELECT position FROM history_cursor WHERE id = 1`).Scan(&index)
	switch {
	case err == sql.ErrNoRows:
		index = len(entries) - 1
	case err != nil:
		return nil, 0, fmt.Errorf("failed to load history cursor: %w", err)
	}
	if index < 0 || index >= len(entries) {
		index = len(entries) - 1
	}
	return entries, index, nil
}

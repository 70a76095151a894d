// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists merged dictionary entries in SQLite so they can
// be looked up and exported without re-reading the source document.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dictgen/pkg/types"
)

const (
	dbFile            = "dictionary.db"
	defaultMaxResults = 20
)

// Store manages the catalogue database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the catalogue database at
// cfg.CatalogDir/dictionary.db and creates the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.CatalogDir
	if dir == "" {
		dir = "catalog"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS entries (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			example TEXT NOT NULL DEFAULT '',
			synthesized INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category)`,
		`CREATE TABLE IF NOT EXISTS index_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			indexed_at TEXT NOT NULL,
			entry_count INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from one indexing run.
type IndexSummary struct {
	Added   int
	Updated int
	Removed int
}

// Total returns the number of entries now in the catalogue.
func (s IndexSummary) Total() int {
	return s.Added + s.Updated
}

// Index replaces the catalogue contents with entries and records the run.
// Entries no longer present in the source are removed.
func (s *Store) Index(ctx context.Context, source string, entries map[string]types.Entry, w io.Writer) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := existingNames(ctx, tx)
	if err != nil {
		return IndexSummary{}, err
	}

	var summary IndexSummary
	for name := range existing {
		if _, ok := entries[name]; !ok {
			summary.Removed++
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return IndexSummary{}, fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (name, category, description, example, synthesized)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := entries[name]
		if _, err := stmt.ExecContext(ctx, e.Name, string(e.Category), e.Description, e.Example, e.Synthesized); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting entry %q: %w", e.Name, err)
		}
		if existing[name] {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO index_runs (source, indexed_at, entry_count) VALUES (?, ?, ?)`,
		source, time.Now().UTC().Format(time.RFC3339Nano), len(entries),
	)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("recording index run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return IndexSummary{}, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "indexed %s: added: %d, updated: %d, removed: %d\n",
		source, summary.Added, summary.Updated, summary.Removed)
	return summary, nil
}

func existingNames(ctx context.Context, tx *sql.Tx) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// LastSource returns the source of the most recent indexing run, or "" if
// the catalogue has never been indexed.
func (s *Store) LastSource(ctx context.Context) (string, error) {
	var source string
	err := s.db.QueryRowContext(ctx,
		`SELECT source FROM index_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&source)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading last index run: %w", err)
	}
	return source, nil
}

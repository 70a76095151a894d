// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/dictgen/pkg/types"
)

// ErrNotFound is returned by Get when no entry has the requested name.
var ErrNotFound = errors.New("entry not found")

// QueryOptions holds parameters for catalogue lookups.
type QueryOptions struct {
	// Query matches entry names and descriptions (case-insensitive substring).
	Query string

	// Category restricts results to one category.
	Category types.Category

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// likeEscaper escapes LIKE wildcards so queries match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Lookup returns entries matching opts. With a query, exact name matches
// rank first, then name prefix matches, then other matches; ties and
// unfiltered listings are ordered case-insensitively by name.
func (s *Store) Lookup(ctx context.Context, opts QueryOptions) ([]types.Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT name, category, description, example, synthesized FROM entries WHERE 1=1`)

	if opts.Category != types.None {
		qb.WriteString(` AND category = ?`)
		args = append(args, string(opts.Category))
	}

	if opts.Query != "" {
		pattern := "%" + likeEscaper.Replace(opts.Query) + "%"
		prefix := likeEscaper.Replace(opts.Query) + "%"
		qb.WriteString(` AND (name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		qb.WriteString(` ORDER BY CASE WHEN name = ? THEN 0 WHEN name LIKE ? ESCAPE '\' THEN 1 ELSE 2 END,`)
		args = append(args, pattern, pattern, opts.Query, prefix)
	} else {
		qb.WriteString(` ORDER BY`)
	}
	qb.WriteString(` name COLLATE NOCASE, name LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []types.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// Get returns the entry with exactly the given name.
func (s *Store) Get(ctx context.Context, name string) (types.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, category, description, example, synthesized FROM entries WHERE name = ?`, name)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (types.Entry, error) {
	var (
		e        types.Entry
		category string
	)
	if err := r.Scan(&e.Name, &category, &e.Description, &e.Example, &e.Synthesized); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Entry{}, err
		}
		return types.Entry{}, fmt.Errorf("scanning entry: %w", err)
	}
	e.Category = types.Category(category)
	return e, nil
}

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Corpus is a named group of sessions.
type Corpus struct {
	Name        string
	Description string
	CreatedAt   time.Time
	Sessions    int
}

// Corpora lists corpora by name with their session counts.
func (s *Store) Corpora(ctx context.Context) ([]Corpus, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT c.name, c.description, c.created_at, COUNT(s.name)
FROM corpora c LEFT JOIN sessions s ON s.corpus = c.name
GROUP BY c.name, c.description, c.created_at
ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	defer rows.Close()

	var out []Corpus
	for rows.Next() {
		var (
			c       Corpus
			created string
		)
		if err := rows.Scan(&c.Name, &c.Description, &created, &c.Sessions); err != nil {
			return nil, fmt.Errorf("scan corpus: %w", err)
		}
		c.CreatedAt = parseTime(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

// HasCorpus reports whether name exists.
func (s *Store) HasCorpus(ctx context.Context, name string) (bool, error) {
	ctx = ensureContext(ctx)
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM corpora WHERE name = ?", name).Scan(&n); err != nil {
		return false, fmt.Errorf("check corpus %q: %w", name, err)
	}
	return n > 0, nil
}

// AddCorpus creates a corpus. Adding an existing corpus is a no-op and
// returns created=false.
func (s *Store) AddCorpus(ctx context.Context, name, description string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errors.New("corpus name is required")
	}
	res, err := s.execWithRetry(ctx,
		"INSERT INTO corpora (name, description, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
		name, description, formatTime(time.Now()))
	if err != nil {
		return false, fmt.Errorf("add corpus %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add corpus %q: %w", name, err)
	}
	return n > 0, nil
}

func (s *Store) requireCorpus(ctx context.Context, name string) error {
	ok, err := s.HasCorpus(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
	}
	return nil
}

func (s *Store) templatePayload(ctx context.Context, corpus string) (string, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM templates WHERE corpus = ?", corpus).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load template for %q: %w", corpus, err)
	}
	return payload, true, nil
}

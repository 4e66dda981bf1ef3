package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"csv2phon/internal/session"
)

// SessionInfo summarizes a stored session.
type SessionInfo struct {
	Corpus       string
	Name         string
	Records      int
	Participants int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetTemplate stores tmpl as the corpus template used by
// CreateSessionFromTemplate.
func (s *Store) SetTemplate(ctx context.Context, corpus string, tmpl *session.Session) error {
	ctx = ensureContext(ctx)
	if err := s.requireCorpus(ctx, corpus); err != nil {
		return err
	}
	payload, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	_, err = s.execWithRetry(ctx, `
INSERT INTO templates (corpus, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(corpus) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		corpus, string(payload), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("store template for %q: %w", corpus, err)
	}
	return nil
}

// CreateSessionFromTemplate returns a new unsaved session. When the corpus has
// a template its participants, tiers, and tier view are copied; the template's
// first record is a placeholder and is dropped. Without a template the session
// starts with the default tier view.
func (s *Store) CreateSessionFromTemplate(ctx context.Context, corpus, name string) (*session.Session, error) {
	ctx = ensureContext(ctx)
	if err := s.requireCorpus(ctx, corpus); err != nil {
		return nil, err
	}
	payload, ok, err := s.templatePayload(ctx, corpus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return session.New(corpus, name), nil
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, fmt.Errorf("decode template for %q: %w", corpus, err)
	}
	sess.Corpus = corpus
	sess.Name = name
	if len(sess.TierView) == 0 {
		sess.TierView = session.DefaultTierView()
	}
	if len(sess.Records) > 0 {
		sess.RemoveRecord(0)
	}
	for _, r := range sess.Records {
		r.ID = uuid.New()
	}
	return &sess, nil
}

// SaveSession upserts sess. The caller must hold the session's write lock.
func (s *Store) SaveSession(ctx context.Context, sess *session.Session, lock uuid.UUID) error {
	ctx = ensureContext(ctx)
	if sess == nil {
		return errors.New("save session: nil session")
	}
	if !s.holdsLock(sess.Corpus, sess.Name, lock) {
		return fmt.Errorf("save session %s/%s: %w", sess.Corpus, sess.Name, ErrNotLocked)
	}
	if err := s.requireCorpus(ctx, sess.Corpus); err != nil {
		return err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s/%s: %w", sess.Corpus, sess.Name, err)
	}
	now := formatTime(time.Now())
	_, err = s.execWithRetry(ctx, `
INSERT INTO sessions (corpus, name, payload, record_count, participant_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(corpus, name) DO UPDATE SET
    payload = excluded.payload,
    record_count = excluded.record_count,
    participant_count = excluded.participant_count,
    updated_at = excluded.updated_at`,
		sess.Corpus, sess.Name, string(payload), len(sess.Records), len(sess.Participants), now, now)
	if err != nil {
		return fmt.Errorf("save session %s/%s: %w", sess.Corpus, sess.Name, err)
	}
	return nil
}

// LoadSession reads a stored session.
func (s *Store) LoadSession(ctx context.Context, corpus, name string) (*session.Session, error) {
	ctx = ensureContext(ctx)
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM sessions WHERE corpus = ? AND name = ?", corpus, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrSessionNotFound, corpus, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s/%s: %w", corpus, name, err)
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s/%s: %w", corpus, name, err)
	}
	for _, rec := range sess.Records {
		rec.LinkAlignments()
	}
	return &sess, nil
}

// Sessions lists the sessions of corpus by name.
func (s *Store) Sessions(ctx context.Context, corpus string) ([]SessionInfo, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT corpus, name, record_count, participant_count, created_at, updated_at
FROM sessions WHERE corpus = ? ORDER BY name`, corpus)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %q: %w", corpus, err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var (
			info             SessionInfo
			created, updated string
		)
		if err := rows.Scan(&info.Corpus, &info.Name, &info.Records, &info.Participants, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.CreatedAt = parseTime(created)
		info.UpdatedAt = parseTime(updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

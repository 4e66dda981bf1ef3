package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

type lockKey struct {
	corpus  string
	session string
}

type heldLock struct {
	token uuid.UUID
	file  *flock.Flock
}

// LockPath returns the lock file guarding corpus/session. The readable part
// is lossy, so a name-based UUID of the exact pair keeps distinct sessions on
// distinct files.
func (s *Store) LockPath(corpus, sessionName string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(corpus+"\x00"+sessionName))
	name := lockToken(corpus) + "__" + lockToken(sessionName) + "-" + id.String()[:8] + ".lock"
	return filepath.Join(s.lockDir, name)
}

// lockToken lowercases letters and digits of any script and turns everything
// else into underscores.
func lockToken(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}

// AcquireWriteLock takes the session's write lock without blocking and
// returns the token SaveSession and ReleaseWriteLock require. ErrLocked is
// returned when another writer, in this process or another, holds it.
func (s *Store) AcquireWriteLock(corpus, sessionName string) (uuid.UUID, error) {
	key := lockKey{corpus: corpus, session: sessionName}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.locks[key]; held {
		return uuid.Nil, fmt.Errorf("%s/%s: %w", corpus, sessionName, ErrLocked)
	}

	file := flock.New(s.LockPath(corpus, sessionName))
	ok, err := file.TryLock()
	if err != nil {
		return uuid.Nil, fmt.Errorf("acquire lock %s/%s: %w", corpus, sessionName, err)
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("%s/%s: %w", corpus, sessionName, ErrLocked)
	}
	token := uuid.New()
	s.locks[key] = &heldLock{token: token, file: file}
	return token, nil
}

// ReleaseWriteLock releases a lock obtained from AcquireWriteLock.
func (s *Store) ReleaseWriteLock(corpus, sessionName string, token uuid.UUID) error {
	key := lockKey{corpus: corpus, session: sessionName}
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.locks[key]
	if !ok || held.token != token {
		return fmt.Errorf("release %s/%s: %w", corpus, sessionName, ErrNotLocked)
	}
	delete(s.locks, key)
	if err := held.file.Unlock(); err != nil {
		return fmt.Errorf("release lock %s/%s: %w", corpus, sessionName, err)
	}
	return nil
}

func (s *Store) holdsLock(corpus, sessionName string, token uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.locks[lockKey{corpus: corpus, session: sessionName}]
	return ok && held.token == token
}

func (s *Store) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, held := range s.locks {
		_ = held.file.Unlock()
		delete(s.locks, key)
	}
}

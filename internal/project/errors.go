package project

import "errors"

var (
	// ErrLocked reports a session write lock held by another writer.
	ErrLocked = errors.New("session is locked by another writer")
	// ErrNotLocked reports a save or release without the matching lock token.
	ErrNotLocked = errors.New("session write lock not held")
	// ErrCorpusNotFound reports a missing corpus.
	ErrCorpusNotFound = errors.New("corpus not found")
	// ErrSessionNotFound reports a missing session.
	ErrSessionNotFound = errors.New("session not found")
)

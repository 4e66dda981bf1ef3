package testsupport

import (
	"context"
	"testing"

	"csv2phon/internal/config"
	"csv2phon/internal/project"
	"csv2phon/internal/session"
)

// MustOpenProject opens the project store configured in cfg and registers
// cleanup.
func MustOpenProject(t testing.TB, cfg *config.Config) *project.Store {
	t.Helper()

	store, err := project.Open(cfg.Paths.ProjectDir)
	if err != nil {
		t.Fatalf("project.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustLoadSession loads a stored session or fails the test.
func MustLoadSession(t testing.TB, store *project.Store, corpus, name string) *session.Session {
	t.Helper()

	sess, err := store.LoadSession(context.Background(), corpus, name)
	if err != nil {
		t.Fatalf("store.LoadSession(%s, %s): %v", corpus, name, err)
	}
	return sess
}

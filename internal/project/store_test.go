package project_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"csv2phon/internal/project"
	"csv2phon/internal/session"
	"csv2phon/internal/testsupport"
)

func TestOpenCreatesProjectLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)

	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.ProjectDir, "locks")); err != nil {
		t.Fatalf("expected locks dir: %v", err)
	}

	// Reopening an initialized database passes the schema check.
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := project.Open(cfg.Paths.ProjectDir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reopened.Close()
}

func TestAddCorpusIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)
	ctx := context.Background()

	created, err := store.AddCorpus(ctx, "Fieldwork", "")
	if err != nil || !created {
		t.Fatalf("AddCorpus: created=%v err=%v", created, err)
	}
	created, err = store.AddCorpus(ctx, "Fieldwork", "again")
	if err != nil || created {
		t.Fatalf("second AddCorpus: created=%v err=%v", created, err)
	}
	ok, err := store.HasCorpus(ctx, "Fieldwork")
	if err != nil || !ok {
		t.Fatalf("HasCorpus: ok=%v err=%v", ok, err)
	}
	corpora, err := store.Corpora(ctx)
	if err != nil {
		t.Fatalf("Corpora: %v", err)
	}
	if len(corpora) != 1 || corpora[0].Name != "Fieldwork" || corpora[0].Sessions != 0 {
		t.Fatalf("unexpected corpora %+v", corpora)
	}
	if _, err := store.AddCorpus(ctx, "  ", ""); err == nil {
		t.Fatal("expected error for blank corpus name")
	}
}

func TestSaveRequiresWriteLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)
	ctx := context.Background()
	if _, err := store.AddCorpus(ctx, "C", ""); err != nil {
		t.Fatalf("AddCorpus: %v", err)
	}

	sess, err := store.CreateSessionFromTemplate(ctx, "C", "S1")
	if err != nil {
		t.Fatalf("CreateSessionFromTemplate: %v", err)
	}
	if len(sess.TierView) != len(session.DefaultTierView()) {
		t.Fatalf("expected default tier view, got %+v", sess.TierView)
	}
	sess.AddRecord(session.NewRecord())

	if err := store.SaveSession(ctx, sess, uuid.New()); !errors.Is(err, project.ErrNotLocked) {
		t.Fatalf("expected ErrNotLocked, got %v", err)
	}

	token, err := store.AcquireWriteLock("C", "S1")
	if err != nil {
		t.Fatalf("AcquireWriteLock: %v", err)
	}
	if _, err := store.AcquireWriteLock("C", "S1"); !errors.Is(err, project.ErrLocked) {
		t.Fatalf("expected ErrLocked on second acquire, got %v", err)
	}
	if err := store.SaveSession(ctx, sess, token); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.ReleaseWriteLock("C", "S1", token); err != nil {
		t.Fatalf("ReleaseWriteLock: %v", err)
	}
	if err := store.ReleaseWriteLock("C", "S1", token); !errors.Is(err, project.ErrNotLocked) {
		t.Fatalf("expected ErrNotLocked on double release, got %v", err)
	}

	loaded := testsupport.MustLoadSession(t, store, "C", "S1")
	if len(loaded.Records) != 1 || loaded.Records[0].ID != sess.Records[0].ID {
		t.Fatalf("unexpected loaded records %+v", loaded.Records)
	}
	infos, err := store.Sessions(ctx, "C")
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(infos) != 1 || infos[0].Records != 1 {
		t.Fatalf("unexpected session infos %+v", infos)
	}
}

func TestLockHeldByAnotherStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenProject(t, cfg)
	second := testsupport.MustOpenProject(t, cfg)

	token, err := first.AcquireWriteLock("C", "S1")
	if err != nil {
		t.Fatalf("AcquireWriteLock: %v", err)
	}
	if _, err := second.AcquireWriteLock("C", "S1"); !errors.Is(err, project.ErrLocked) {
		t.Fatalf("expected ErrLocked from second store, got %v", err)
	}
	if err := first.ReleaseWriteLock("C", "S1", token); err != nil {
		t.Fatalf("ReleaseWriteLock: %v", err)
	}
	token2, err := second.AcquireWriteLock("C", "S1")
	if err != nil {
		t.Fatalf("AcquireWriteLock after release: %v", err)
	}
	_ = second.ReleaseWriteLock("C", "S1", token2)
}

func TestSessionFromTemplateDropsPlaceholderRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)
	ctx := context.Background()
	if _, err := store.AddCorpus(ctx, "C", ""); err != nil {
		t.Fatalf("AddCorpus: %v", err)
	}

	tmpl := session.New("C", "template")
	tmpl.AddParticipant(&session.Participant{ID: "CHI", Role: session.RoleTargetChild})
	tmpl.AddTier(session.TierDescription{Name: "Gloss", Grouped: true})
	tmpl.AddRecord(session.NewRecord())
	if err := store.SetTemplate(ctx, "C", tmpl); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}

	sess, err := store.CreateSessionFromTemplate(ctx, "C", "S2")
	if err != nil {
		t.Fatalf("CreateSessionFromTemplate: %v", err)
	}
	if sess.Name != "S2" || sess.Corpus != "C" {
		t.Fatalf("unexpected identity %s/%s", sess.Corpus, sess.Name)
	}
	if len(sess.Records) != 0 {
		t.Fatalf("expected template record dropped, got %d", len(sess.Records))
	}
	if !sess.HasTier("Gloss") || len(sess.Participants) != 1 {
		t.Fatalf("template content not copied: %+v", sess)
	}
}

func TestMissingCorpusAndSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)
	ctx := context.Background()

	if _, err := store.CreateSessionFromTemplate(ctx, "nope", "S"); !errors.Is(err, project.ErrCorpusNotFound) {
		t.Fatalf("expected ErrCorpusNotFound, got %v", err)
	}
	if _, err := store.LoadSession(ctx, "nope", "S"); !errors.Is(err, project.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLockPathsDistinguishLossyNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenProject(t, cfg)

	a := store.LockPath("Corpus", "session one")
	b := store.LockPath("Corpus", "session_one")
	if a == b {
		t.Fatalf("expected distinct lock files, both %s", a)
	}
	if filepath.Dir(a) != filepath.Join(cfg.Paths.ProjectDir, "locks") {
		t.Fatalf("unexpected lock dir %s", a)
	}
	if got := filepath.Base(store.LockPath("Ümlaut/Corpus", "s:1")); !strings.HasPrefix(got, "ümlaut_corpus__s_1-") {
		t.Fatalf("unexpected lock name %s", got)
	}

	t1, err := store.AcquireWriteLock("Corpus", "session one")
	if err != nil {
		t.Fatalf("AcquireWriteLock: %v", err)
	}
	t2, err := store.AcquireWriteLock("Corpus", "session_one")
	if err != nil {
		t.Fatalf("second session should lock independently: %v", err)
	}
	_ = store.ReleaseWriteLock("Corpus", "session one", t1)
	_ = store.ReleaseWriteLock("Corpus", "session_one", t2)
}

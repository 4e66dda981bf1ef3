package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"csv2phon/internal/alignment"
	"csv2phon/internal/config"
	"csv2phon/internal/converter"
	"csv2phon/internal/csvio"
	"csv2phon/internal/description"
	"csv2phon/internal/logging"
	"csv2phon/internal/session"
	"csv2phon/internal/syllabifier"
)

// Project is the persistence the importer writes sessions to.
type Project interface {
	HasCorpus(ctx context.Context, name string) (bool, error)
	AddCorpus(ctx context.Context, name, description string) (bool, error)
	CreateSessionFromTemplate(ctx context.Context, corpus, name string) (*session.Session, error)
	AcquireWriteLock(corpus, sessionName string) (uuid.UUID, error)
	SaveSession(ctx context.Context, sess *session.Session, lock uuid.UUID) error
	ReleaseWriteLock(corpus, sessionName string, lock uuid.UUID) error
}

// Options controls path resolution, CSV dialect, and the syllabification
// fallback language.
type Options struct {
	BaseDir         string
	CSV             csvio.Options
	DefaultLanguage string
}

// OptionsFromConfig derives importer options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseDir: cfg.Paths.BaseDir,
		CSV: csvio.Options{
			Delimiter: cfg.DelimiterRune(),
			Quote:     cfg.QuoteRune(),
			Encoding:  cfg.CSV.Encoding,
		},
		DefaultLanguage: cfg.Syllabifier.DefaultLanguage,
	}
}

// Option customizes an Importer.
type Option func(*Importer)

// WithConverters replaces the default converter registry.
func WithConverters(c ConverterLookup) Option {
	return func(i *Importer) { i.converters = c }
}

// WithSyllabifiers replaces the default syllabifier library.
func WithSyllabifiers(l SyllabifierLookup) Option {
	return func(i *Importer) { i.syllabifiers = l }
}

// WithAligner replaces the default phone aligner.
func WithAligner(a Aligner) Option {
	return func(i *Importer) { i.aligner = a }
}

// Importer runs import descriptions against a project.
type Importer struct {
	project      Project
	opts         Options
	converters   ConverterLookup
	syllabifiers SyllabifierLookup
	aligner      Aligner
	logger       *slog.Logger
}

// New returns an importer writing to project.
func New(project Project, opts Options, logger *slog.Logger, options ...Option) *Importer {
	imp := &Importer{
		project:      project,
		opts:         opts,
		converters:   converter.Default(),
		syllabifiers: syllabifier.DefaultLibrary(),
		aligner:      alignment.NewAligner(alignment.DefaultCosts()),
		logger:       logging.NewComponentLogger(logger, "importer"),
	}
	for _, opt := range options {
		opt(imp)
	}
	return imp
}

// FileResult reports the outcome of one file entry. Saved is false when the
// file failed or its write lock was unavailable.
type FileResult struct {
	Entry    description.FileEntry
	Path     string
	Session  *session.Session
	Records  int
	Aligned  int
	Warnings int
	Saved    bool
	Duration time.Duration
	Err      error
}

// Summary aggregates a batch run.
type Summary struct {
	Results []FileResult
	// Skipped counts entries not selected for import.
	Skipped int
	// Err is set when the context ended the batch early.
	Err error
}

// Failed counts entries that ended with an error.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Saved counts sessions written to the project.
func (s Summary) Saved() int {
	n := 0
	for _, r := range s.Results {
		if r.Saved {
			n++
		}
	}
	return n
}

// Run imports every selected file entry of desc in order. A failing entry is
// logged and recorded in its FileResult; later entries still run. The context
// is checked before each entry only.
func (imp *Importer) Run(ctx context.Context, desc *description.Description) Summary {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := imp.logger.With(logging.String(logging.FieldCorpus, desc.Corpus))
	logger.Info("import started", logging.Int("files", len(desc.Files)))

	var summary Summary
	for _, entry := range desc.Files {
		if !entry.ShouldImport() {
			summary.Skipped++
			logger.Debug("file entry not selected", logging.String(logging.FieldFile, entry.Location))
			continue
		}
		if err := ctx.Err(); err != nil {
			summary.Err = err
			logger.Warn("import canceled", logging.Error(err))
			break
		}
		result, err := imp.ImportFile(ctx, desc, entry)
		if err != nil {
			result.Err = err
			logging.ErrorWithContext(logger, "file import failed",
				"file_import_failed",
				logging.String(logging.FieldFile, entry.Location),
				logging.String(logging.FieldSession, entry.Session),
				logging.String("error_kind", Kind(err)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix the file entry and rerun the import"),
			)
		}
		summary.Results = append(summary.Results, result)
	}

	logger.Info("import finished",
		logging.Int("files", len(summary.Results)),
		logging.Int("saved", summary.Saved()),
		logging.Int("failed", summary.Failed()),
		logging.Int("skipped", summary.Skipped),
	)
	return summary
}

var windowsDrivePath = regexp.MustCompile(`^[A-Z]:\\`)

// ResolvePath returns location unchanged when it is absolute and joined to
// the base directory otherwise.
func (imp *Importer) ResolvePath(location string) string {
	if filepath.IsAbs(location) || windowsDrivePath.MatchString(location) {
		return location
	}
	return filepath.Join(imp.opts.BaseDir, location)
}

// ImportFile imports a single file entry of desc into a new session and saves
// it. The returned result is populated as far as the import got.
func (imp *Importer) ImportFile(ctx context.Context, desc *description.Description, entry description.FileEntry) (FileResult, error) {
	start := time.Now()
	warnings := logging.NewCounter(slog.LevelWarn)
	result, err := imp.importFile(ctx, desc, entry, logging.TeeLogger(imp.logger, warnings))
	result.Duration = time.Since(start)
	result.Warnings = warnings.Count()
	return result, err
}

func (imp *Importer) importFile(ctx context.Context, desc *description.Description, entry description.FileEntry, base *slog.Logger) (FileResult, error) {
	result := FileResult{Entry: entry, Path: imp.ResolvePath(entry.Location)}

	logger := base.With(
		logging.String(logging.FieldCorpus, desc.Corpus),
		logging.String(logging.FieldSession, entry.Session),
		logging.String(logging.FieldFile, result.Path),
	)

	if _, err := os.Stat(result.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fileNotFound(result.Path)
		}
		return result, fileIO(result.Path, err)
	}

	reader, err := csvio.Open(result.Path, imp.opts.CSV)
	if err != nil {
		return result, fileIO(result.Path, err)
	}
	defer reader.Close()

	logger.Info("importing file")

	exists, err := imp.project.HasCorpus(ctx, desc.Corpus)
	if err != nil {
		return result, fileIO(result.Path, err)
	}
	if !exists {
		logger.Info("creating corpus")
		if _, err := imp.project.AddCorpus(ctx, desc.Corpus, ""); err != nil {
			return result, fileIO(result.Path, err)
		}
	}

	sess, err := imp.project.CreateSessionFromTemplate(ctx, desc.Corpus, entry.Session)
	if err != nil {
		return result, fileIO(result.Path, err)
	}
	result.Session = sess
	imp.applyEntry(sess, desc, entry, logger)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("missing header row")
		}
		return result, fileIO(result.Path, err)
	}
	bindings := BindHeader(header, desc, sess, imp.converters, logger)
	logger.Debug("bound header", logging.Int("columns", len(header)), logging.Int("mapped", bindings.Mapped()))

	builder := NewRecordBuilder(sess, header, bindings, logger)
	post := NewPostProcessor(desc, imp.syllabifiers, imp.aligner, imp.opts.DefaultLanguage, logger)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fileIO(result.Path, err)
		}
		rec := builder.Build(row, reader.Rows())
		result.Aligned += post.Process(rec)
	}
	result.Records = len(sess.Records)

	saved, err := imp.save(ctx, sess, logger)
	if err != nil {
		return result, fileIO(result.Path, err)
	}
	result.Saved = saved

	logger.Info("file imported",
		logging.Int("records", result.Records),
		logging.Int("participants", len(sess.Participants)),
		logging.Int("alignments", result.Aligned),
		logging.Bool("saved", saved),
	)
	return result, nil
}

func (imp *Importer) applyEntry(sess *session.Session, desc *description.Description, entry description.FileEntry, logger *slog.Logger) {
	date, ok, err := entry.ParseDate()
	switch {
	case err != nil:
		logging.WarnWithContext(logger, "session date did not parse",
			"date_parse_failed",
			logging.String("date", entry.Date),
			logging.Error(&FieldError{Field: "date", Err: err}),
			logging.String(logging.FieldErrorHint, "use yyyy-MM-dd"),
			logging.String(logging.FieldImpact, "session date left unset"),
		)
	case ok:
		sess.SetDate(date)
	}

	for _, tmpl := range desc.Participants {
		p, err := tmpl.ToParticipant()
		if err != nil {
			logging.WarnWithContext(logger, "participant birthday did not parse",
				"birthday_parse_failed",
				logging.String("participant_id", tmpl.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "participant age left unset"),
			)
		}
		sess.AddParticipant(p)
	}

	if entry.Media != "" {
		sess.Media = entry.Media
	}
}

// save persists sess under its write lock. An unavailable lock returns
// (false, nil) so the batch continues.
func (imp *Importer) save(ctx context.Context, sess *session.Session, logger *slog.Logger) (bool, error) {
	lock, err := imp.project.AcquireWriteLock(sess.Corpus, sess.Name)
	if err != nil {
		logging.WarnWithContext(logger, "session write lock unavailable",
			"session_locked",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "close other writers of this session and rerun"),
			logging.String(logging.FieldImpact, "session not saved"),
		)
		return false, nil
	}
	defer func() {
		if err := imp.project.ReleaseWriteLock(sess.Corpus, sess.Name, lock); err != nil {
			logger.Warn("failed to release session write lock", logging.Error(err))
		}
	}()

	if err := imp.project.SaveSession(ctx, sess, lock); err != nil {
		return false, fmt.Errorf("save session: %w", err)
	}
	return true, nil
}

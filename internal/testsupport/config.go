package testsupport

import (
	"path/filepath"
	"testing"

	"csv2phon/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// CSV fixtures are resolved against BaseDir(cfg).
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectDir = filepath.Join(base, "project")
	cfgVal.Paths.BaseDir = filepath.Join(base, "csv")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDialect overrides the CSV delimiter and quote characters.
func WithDialect(delimiter, quote string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.CSV.Delimiter = delimiter
		b.cfg.CSV.Quote = quote
	}
}

// WithEncoding overrides the CSV text encoding.
func WithEncoding(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.CSV.Encoding = name
	}
}

// WithDefaultLanguage overrides the default syllabifier language.
func WithDefaultLanguage(tag string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Syllabifier.DefaultLanguage = tag
	}
}

// BaseDir returns the directory relative CSV locations resolve against.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.BaseDir
}

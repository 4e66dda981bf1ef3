package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ProjectDir string `toml:"project_dir"`
	BaseDir    string `toml:"base_dir"`
	LogDir     string `toml:"log_dir"`
}

// CSV describes the dialect used to tokenize imported files.
type CSV struct {
	Encoding  string `toml:"encoding"`
	Delimiter string `toml:"delimiter"`
	Quote     string `toml:"quote"`
}

// Syllabifier contains defaults for the syllabification pass.
type Syllabifier struct {
	// DefaultLanguage is used when a column map does not name a language.
	DefaultLanguage string `toml:"default_language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for csv2phon.
//
// Configuration sections:
//   - Paths: project store, CSV base directory, and log directory
//   - CSV: encoding, field delimiter, and quote character
//   - Syllabifier: default syllabification language
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	CSV         CSV         `toml:"csv"`
	Syllabifier Syllabifier `toml:"syllabifier"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load reads the configuration at path, or the first existing default
// location when path is empty, and returns it normalized and validated along
// with the resolved path and whether a file was found there. Unknown keys are
// rejected so misspelled settings do not silently fall back to defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file).DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, decodeErr := range strict.Errors {
				keys = append(keys, strings.Join(decodeErr.Key(), "."))
			}
			return fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath expands an explicit path, which need not exist yet.
// Without one it tries the user config and then csv2phon.toml in the working
// directory, reporting the user config path when neither exists.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, exists, nil
	}

	candidates := make([]string, 0, 2)
	for _, candidate := range []string{defaultConfigPath, localConfigName} {
		expanded, err := ExpandPath(candidate)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}
	for _, candidate := range candidates {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	return !info.IsDir(), nil
}

// EnsureDirectories creates the project and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ProjectDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DelimiterRune returns the configured field delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// QuoteRune returns the configured text quote character.
func (c *Config) QuoteRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Quote)
	return r
}

// ExpandPath resolves a leading ~ to the home directory and returns the
// cleaned absolute path. The empty string is returned unchanged.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") || strings.HasPrefix(pathValue, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, pathValue[1:])
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCSV()
	c.normalizeSyllabifier()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("CSV2PHON_PROJECT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ProjectDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.ProjectDir) == "" {
		c.Paths.ProjectDir = defaultProjectDir
	}
	if strings.TrimSpace(c.Paths.BaseDir) == "" {
		c.Paths.BaseDir = defaultBaseDir
	}
	var err error
	if c.Paths.ProjectDir, err = ExpandPath(c.Paths.ProjectDir); err != nil {
		return fmt.Errorf("paths.project_dir: %w", err)
	}
	if c.Paths.BaseDir, err = ExpandPath(c.Paths.BaseDir); err != nil {
		return fmt.Errorf("paths.base_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCSV() {
	c.CSV.Encoding = strings.TrimSpace(c.CSV.Encoding)
	if c.CSV.Encoding == "" {
		c.CSV.Encoding = defaultEncoding
	}
	// Delimiters are significant whitespace (tab), so only empty values fall back.
	if c.CSV.Delimiter == "" {
		c.CSV.Delimiter = defaultDelimiter
	}
	if c.CSV.Delimiter == `\t` {
		c.CSV.Delimiter = "\t"
	}
	if c.CSV.Quote == "" {
		c.CSV.Quote = defaultQuote
	}
}

func (c *Config) normalizeSyllabifier() {
	c.Syllabifier.DefaultLanguage = strings.TrimSpace(c.Syllabifier.DefaultLanguage)
	if c.Syllabifier.DefaultLanguage == "" {
		c.Syllabifier.DefaultLanguage = defaultSyllabifierLang
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

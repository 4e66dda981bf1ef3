package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"csv2phon/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCSV(); err != nil {
		return err
	}
	if err := c.validateSyllabifier(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCSV() error {
	if _, err := htmlindex.Get(c.CSV.Encoding); err != nil {
		if enc, ierr := ianaindex.IANA.Encoding(c.CSV.Encoding); ierr != nil || enc == nil {
			return fmt.Errorf("csv.encoding: unsupported encoding %q", c.CSV.Encoding)
		}
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if utf8.RuneCountInString(c.CSV.Quote) != 1 {
		return fmt.Errorf("csv.quote must be a single character, got %q", c.CSV.Quote)
	}
	if c.CSV.Delimiter == c.CSV.Quote {
		return errors.New("csv.delimiter and csv.quote must differ")
	}
	for _, value := range []rune{c.DelimiterRune(), c.QuoteRune()} {
		if value == '\n' || value == '\r' {
			return errors.New("csv.delimiter and csv.quote cannot be line breaks")
		}
	}
	return nil
}

func (c *Config) validateSyllabifier() error {
	if _, ok := language.BaseCode(c.Syllabifier.DefaultLanguage); !ok {
		return fmt.Errorf("syllabifier.default_language: unknown language %q", c.Syllabifier.DefaultLanguage)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

package description

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a description document syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown description file extensions.
var ErrUnsupportedFormat = errors.New("unsupported description format")

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads and parses the description at path.
func LoadFile(path string) (*Description, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format, applies defaults, and validates the
// fields the importer depends on.
func Parse(data []byte, format Format) (*Description, error) {
	var d Description
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse description TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse description YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	applyDefaults(&d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// applyDefaults trims names and derives missing session names from the file
// location. Column grouping is left unset.
func applyDefaults(d *Description) {
	d.Corpus = strings.TrimSpace(d.Corpus)
	for i := range d.Columns {
		d.Columns[i].TargetField = strings.TrimSpace(d.Columns[i].TargetField)
		d.Columns[i].Filter = strings.TrimSpace(d.Columns[i].Filter)
		d.Columns[i].Syllabifier = strings.TrimSpace(d.Columns[i].Syllabifier)
	}
	for i := range d.Files {
		f := &d.Files[i]
		f.Location = strings.TrimSpace(f.Location)
		f.Session = strings.TrimSpace(f.Session)
		if f.Session == "" && f.Location != "" {
			f.Session = sessionName(f.Location)
		}
	}
}

// Validate checks the fields the importer cannot run without.
func (d *Description) Validate() error {
	var problems []string
	if d.Corpus == "" {
		problems = append(problems, "corpus is required")
	}
	for i, c := range d.Columns {
		if c.CSVColumn == "" {
			problems = append(problems, fmt.Sprintf("column %d: csv_column is required", i+1))
		}
		if c.TargetField == "" {
			problems = append(problems, fmt.Sprintf("column %d: target_field is required", i+1))
		}
	}
	for i, f := range d.Files {
		if f.Location == "" {
			problems = append(problems, fmt.Sprintf("file %d: location is required", i+1))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid description: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Marshal serializes d in the given format.
func Marshal(d *Description, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(d)
	case FormatYAML:
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes d to path in the format implied by its extension.
func WriteFile(d *Description, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(d, format)
	if err != nil {
		return fmt.Errorf("failed to marshal description: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write description %s: %w", path, err)
	}
	return nil
}

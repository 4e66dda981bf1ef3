package importer

import (
	"errors"
	"fmt"
)

// ErrorClassifier is implemented by errors that carry a failure kind.
type ErrorClassifier interface {
	ErrorKind() string
}

// Failure kinds reported through ErrorClassifier.
const (
	KindNotFound = "not_found"
	KindIO       = "io"
	KindParse    = "parse"
)

// ErrFileNotFound reports a file entry whose CSV does not exist.
var ErrFileNotFound = errors.New("csv file not found")

// FileError aborts the import of one file entry.
type FileError struct {
	Path string
	Kind string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) ErrorKind() string { return e.Kind }

func fileNotFound(path string) error {
	return &FileError{
		Path: path,
		Kind: KindNotFound,
		Err:  fmt.Errorf("%w: '%s' (check the base directory)", ErrFileNotFound, path),
	}
}

func fileIO(path string, err error) error {
	return &FileError{Path: path, Kind: KindIO, Err: err}
}

// FieldError describes a cell that could not be parsed into its field.
type FieldError struct {
	Field string
	Row   int
	Group int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d field %q group %d: %v", e.Row, e.Field, e.Group, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func (e *FieldError) ErrorKind() string { return KindParse }

// Kind returns the ErrorKind of the first classified error in err's chain, or
// "" when none is classified.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

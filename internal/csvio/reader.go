package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options configures a Reader. Zero values select comma, double quote, and
// UTF-8.
type Options struct {
	Delimiter rune
	Quote     rune
	Encoding  string
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	if strings.TrimSpace(o.Encoding) == "" {
		o.Encoding = "UTF-8"
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Delimiter == o.Quote:
		return fmt.Errorf("delimiter and quote must differ (%q)", o.Delimiter)
	case o.Delimiter == '\n' || o.Delimiter == '\r':
		return errors.New("delimiter cannot be a line break")
	case o.Quote == '\n' || o.Quote == '\r':
		return errors.New("quote cannot be a line break")
	}
	return nil
}

// LookupEncoding resolves a WHATWG or IANA encoding name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown text encoding %q", name)
	}
	return enc, nil
}

type rowSource interface {
	Read() ([]string, error)
}

// Reader yields rows of string cells.
type Reader struct {
	src    rowSource
	closer io.Closer
	rows   int
}

// Open opens path for reading with opts. The caller must Close the reader.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	r, err := NewReader(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader decodes r with the configured encoding and tokenizes it. A byte
// order mark, when present, overrides the encoding.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))

	if opts.Quote == '"' {
		cr := csv.NewReader(decoded)
		cr.Comma = opts.Delimiter
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		return &Reader{src: cr}, nil
	}
	return &Reader{src: newTokenizer(decoded, opts.Delimiter, opts.Quote)}, nil
}

// Read returns the next row, or io.EOF after the last one.
func (r *Reader) Read() ([]string, error) {
	row, err := r.src.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv row %d: %w", r.rows+1, err)
	}
	r.rows++
	return row, nil
}

// ReadAll returns the remaining rows.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// Rows is the number of rows returned so far.
func (r *Reader) Rows() int { return r.rows }

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ErrUnterminatedQuote reports a quoted field still open at end of input.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

type tokenizer struct {
	br    *bufio.Reader
	delim rune
	quote rune
	line  int
}

func newTokenizer(r io.Reader, delim, quote rune) *tokenizer {
	return &tokenizer{br: bufio.NewReader(r), delim: delim, quote: quote, line: 1}
}

func (t *tokenizer) Read() ([]string, error) {
	var (
		fields   []string
		field    strings.Builder
		quoted   bool
		inQuotes bool
		start    = t.line
	)
	for {
		c, _, err := t.br.ReadRune()
		if errors.Is(err, io.EOF) {
			if inQuotes {
				return nil, fmt.Errorf("line %d: %w", start, ErrUnterminatedQuote)
			}
			if len(fields) == 0 && field.Len() == 0 && !quoted {
				return nil, io.EOF
			}
			return append(fields, field.String()), nil
		}
		if err != nil {
			return nil, err
		}

		if inQuotes {
			if c == t.quote {
				next, _, err := t.br.ReadRune()
				if err == nil && next == t.quote {
					field.WriteRune(t.quote)
					continue
				}
				if err == nil {
					_ = t.br.UnreadRune()
				}
				inQuotes = false
				continue
			}
			if c == '\n' {
				t.line++
			}
			field.WriteRune(c)
			continue
		}

		switch c {
		case t.delim:
			fields = append(fields, field.String())
			field.Reset()
			quoted = false
		case t.quote:
			if field.Len() == 0 && !quoted {
				inQuotes = true
				quoted = true
				continue
			}
			field.WriteRune(c)
		case '\r':
			if next, _, err := t.br.ReadRune(); err == nil && next != '\n' {
				_ = t.br.UnreadRune()
			}
			fallthrough
		case '\n':
			t.line++
			if len(fields) == 0 && field.Len() == 0 && !quoted {
				start = t.line
				continue
			}
			return append(fields, field.String()), nil
		default:
			field.WriteRune(c)
		}
	}
}

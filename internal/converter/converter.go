package converter

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Converter transforms a single cell value before it is interpreted. Converters
// are stateless and safe to reuse across rows and files.
type Converter interface {
	Name() string
	Convert(value string) string
}

type funcConverter struct {
	name string
	fn   func(string) string
}

func (f funcConverter) Name() string { return f.name }

func (f funcConverter) Convert(value string) string { return f.fn(value) }

// New wraps fn as a named Converter.
func New(name string, fn func(string) string) Converter {
	return funcConverter{name: name, fn: fn}
}

// Registry resolves converters by name. Lookups ignore case and surrounding
// whitespace so description files can write "XSAMPA" or "xsampa".
type Registry struct {
	byName map[string]Converter
}

// NewRegistry builds a registry holding the given converters.
func NewRegistry(converters ...Converter) (*Registry, error) {
	r := &Registry{byName: make(map[string]Converter, len(converters))}
	for _, c := range converters {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c. Registering a second converter under the same name fails.
func (r *Registry) Register(c Converter) error {
	if c == nil {
		return fmt.Errorf("register converter: nil converter")
	}
	key := registryKey(c.Name())
	if key == "" {
		return fmt.Errorf("register converter: empty name")
	}
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("register converter: %q already registered", c.Name())
	}
	r.byName[key] = c
	return nil
}

// Lookup returns the converter registered under name.
func (r *Registry) Lookup(name string) (Converter, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.byName[registryKey(name)]
	return c, ok
}

// Names lists registered converter names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for _, c := range r.byName {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Default returns a registry with the built-in converters:
//   - nfc, nfd: Unicode normalization forms
//   - fold-width: full-width and half-width forms folded to their canonical width
//   - lower: language-neutral lower casing
//   - xsampa: X-SAMPA to IPA
func Default() *Registry {
	r, err := NewRegistry(
		New("nfc", norm.NFC.String),
		New("nfd", norm.NFD.String),
		New("fold-width", width.Fold.String),
		New("lower", cases.Lower(language.Und).String),
		New("xsampa", XSAMPAToIPA),
	)
	if err != nil {
		panic(err)
	}
	return r
}

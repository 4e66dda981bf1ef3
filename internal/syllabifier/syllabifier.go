// Package syllabifier assigns syllable constituents to transcript phones and
// keeps a library of syllabifiers keyed by language.
package syllabifier

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"csv2phon/internal/ipa"
	"csv2phon/internal/language"
)

// Syllabifier marks each segment of a phone sequence with its constituent in
// place. Boundaries and stress markers are left untouched.
type Syllabifier interface {
	Name() string
	Syllabify(phones []*ipa.Phone)
}

// Library maps base languages to syllabifiers.
type Library struct {
	mu      sync.RWMutex
	entries map[string]Syllabifier
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{entries: make(map[string]Syllabifier)}
}

// DefaultLibrary registers the sonority syllabifier for the languages it is
// tuned for.
func DefaultLibrary() *Library {
	lib := NewLibrary()
	for _, tag := range []string{"en", "fr", "de", "nl", "es", "it", "pt", "da", "sv", "nb"} {
		if err := lib.Register(tag, NewSonority()); err != nil {
			panic(err)
		}
	}
	return lib
}

// Register binds a syllabifier to the base language of tag. Tags may be BCP 47
// tags, ISO 639-3 codes, or English names ("eng", "en-GB", "English").
func (l *Library) Register(tag string, s Syllabifier) error {
	if s == nil {
		return fmt.Errorf("register syllabifier %q: nil syllabifier", tag)
	}
	key, err := baseKey(tag)
	if err != nil {
		return fmt.Errorf("register syllabifier: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = s
	return nil
}

// ForLanguage resolves tag to a syllabifier. Unknown or unparsable tags return
// (nil, false), which callers treat as a no-op.
func (l *Library) ForLanguage(tag string) (Syllabifier, bool) {
	if l == nil {
		return nil, false
	}
	key, err := baseKey(tag)
	if err != nil {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.entries[key]
	return s, ok
}

// Languages lists registered base languages in sorted order.
func (l *Library) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.entries))
	for key := range l.entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func baseKey(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("empty language tag")
	}
	key, ok := language.BaseCode(tag)
	if !ok {
		return "", fmt.Errorf("unknown language %q", tag)
	}
	return key, nil
}

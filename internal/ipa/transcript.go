package ipa

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	primaryStress   = '\u02c8'
	secondaryStress = '\u02cc'
	syllabicMark    = '\u0329'
	syllabicMarkAlt = '\u030d'
	tieBelow        = '\u035c'
	tieAbove        = '\u0361'
)

// Transcript is an ordered sequence of phones, boundaries, and stress markers.
type Transcript struct {
	Phones []*Phone `json:"phones"`
}

// ParseError describes the first character a transcript could not accept.
type ParseError struct {
	Input    string
	Position int
	Char     rune
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ipa: %s %q at position %d in %q", e.Reason, e.Char, e.Position, e.Input)
}

// ErrorKind classifies transcript failures as recoverable field errors.
func (e *ParseError) ErrorKind() string { return "parse" }

// Parse reads an IPA transcription. Whitespace separates words, '.' marks
// syllable boundaries, ˈ and ˌ mark stress, and combining marks or modifier
// letters attach to the preceding segment. Tie bars join the next symbol into
// the same phone. Digits, punctuation, and other symbols are rejected.
func Parse(text string) (*Transcript, error) {
	t := &Transcript{}
	var (
		last     *Phone
		joinNext bool
		pos      int
	)
	for _, r := range text {
		pos++
		switch {
		case unicode.IsSpace(r):
			if joinNext {
				return nil, &ParseError{Input: text, Position: pos, Char: r, Reason: "dangling tie bar before"}
			}
			if n := len(t.Phones); n > 0 && t.Phones[n-1].Kind != KindWordBoundary {
				t.Phones = append(t.Phones, &Phone{Text: " ", Kind: KindWordBoundary})
			}
			last = nil
		case r == '.':
			t.Phones = append(t.Phones, &Phone{Text: ".", Kind: KindSyllableBoundary})
			last = nil
		case r == primaryStress || r == secondaryStress:
			t.Phones = append(t.Phones, &Phone{Text: string(r), Kind: KindStress})
			last = nil
		case r == tieAbove || r == tieBelow:
			if last == nil {
				return nil, &ParseError{Input: text, Position: pos, Char: r, Reason: "tie bar without preceding segment"}
			}
			last.Text += string(r)
			joinNext = true
		case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Lm, r):
			if last == nil {
				return nil, &ParseError{Input: text, Position: pos, Char: r, Reason: "diacritic without preceding segment"}
			}
			last.Text += string(r)
			if r == syllabicMark || r == syllabicMarkAlt {
				last.Syllabic = true
			}
		case unicode.IsLetter(r):
			if joinNext {
				last.Text += string(r)
				joinNext = false
				continue
			}
			kind := KindConsonant
			if isVowelRune(unicode.ToLower(r)) {
				kind = KindVowel
			}
			last = &Phone{Text: string(r), Kind: kind}
			t.Phones = append(t.Phones, last)
		default:
			return nil, &ParseError{Input: text, Position: pos, Char: r, Reason: "unexpected character"}
		}
	}
	if joinNext {
		return nil, &ParseError{Input: text, Position: pos, Reason: "dangling tie bar at end"}
	}
	if n := len(t.Phones); n > 0 && t.Phones[n-1].Kind == KindWordBoundary {
		t.Phones = t.Phones[:n-1]
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(text string) *Transcript {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders the transcript back to text.
func (t *Transcript) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range t.Phones {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Len returns the number of elements, boundaries included.
func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Phones)
}

// IsEmpty reports whether the transcript has no segments.
func (t *Transcript) IsEmpty() bool {
	return len(t.Segments()) == 0
}

// Segments returns the consonants and vowels in order, skipping boundaries and
// stress markers. The returned phones are shared with t.
func (t *Transcript) Segments() []*Phone {
	if t == nil {
		return nil
	}
	out := make([]*Phone, 0, len(t.Phones))
	for _, p := range t.Phones {
		if p.IsSegment() {
			out = append(out, p)
		}
	}
	return out
}

// Syllabification renders each segment with its constituent code, for example
// "h:Oɛ:Nl:Oo:N".
func (t *Transcript) Syllabification() string {
	var b strings.Builder
	for _, p := range t.Segments() {
		b.WriteString(p.Text)
		b.WriteByte(':')
		b.WriteString(p.Constituent.Code())
	}
	return b.String()
}

// Equal reports whether two transcripts render identically.
func (t *Transcript) Equal(other *Transcript) bool {
	return t.String() == other.String()
}

package orthography

import (
	"fmt"
	"strings"
	"unicode"
)

// ElementKind classifies an orthography element.
type ElementKind int

const (
	Word ElementKind = iota
	Punctuation
	Comment
	Event
)

func (k ElementKind) String() string {
	switch k {
	case Word:
		return "word"
	case Punctuation:
		return "punctuation"
	case Comment:
		return "comment"
	case Event:
		return "event"
	default:
		return "unknown"
	}
}

// Element is one token of an orthographic line. Comment and event text
// excludes the delimiters.
type Element struct {
	Kind ElementKind `json:"kind"`
	Text string      `json:"text"`
}

func (e Element) String() string {
	switch e.Kind {
	case Comment:
		return "(" + e.Text + ")"
	case Event:
		return "*" + e.Text + "*"
	default:
		return e.Text
	}
}

// Orthography is a parsed orthographic transcription.
type Orthography struct {
	Elements []Element `json:"elements"`
}

// ParseError reports malformed orthography.
type ParseError struct {
	Input    string
	Position int
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("orthography: %s at position %d in %q", e.Reason, e.Position, e.Input)
}

// ErrorKind classifies orthography failures as recoverable field errors.
func (e *ParseError) ErrorKind() string { return "parse" }

const punctuation = ".,?!;:"

// Parse splits text into words, punctuation, parenthesized comments, and
// *events*. Trailing punctuation is split off words. Unbalanced delimiters and
// the reserved characters [ ] < > are rejected.
func Parse(text string) (*Orthography, error) {
	o := &Orthography{}
	runes := []rune(text)
	var word strings.Builder
	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		var trailing []Element
		for w != "" {
			last := []rune(w)[len([]rune(w))-1]
			if !strings.ContainsRune(punctuation, last) {
				break
			}
			trailing = append([]Element{{Kind: Punctuation, Text: string(last)}}, trailing...)
			w = strings.TrimSuffix(w, string(last))
		}
		if w != "" {
			o.Elements = append(o.Elements, Element{Kind: Word, Text: w})
		}
		o.Elements = append(o.Elements, trailing...)
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flushWord()
		case r == '(' || r == '*':
			flushWord()
			closer := ')'
			kind := Comment
			if r == '*' {
				closer = '*'
				kind = Event
			}
			end := indexRune(runes, closer, i+1)
			if end < 0 {
				return nil, &ParseError{Input: text, Position: i + 1, Reason: fmt.Sprintf("unclosed %q", r)}
			}
			o.Elements = append(o.Elements, Element{Kind: kind, Text: strings.TrimSpace(string(runes[i+1 : end]))})
			i = end
		case r == ')':
			return nil, &ParseError{Input: text, Position: i + 1, Reason: "unbalanced ')'"}
		case strings.ContainsRune("[]<>", r) || unicode.IsControl(r):
			return nil, &ParseError{Input: text, Position: i + 1, Reason: fmt.Sprintf("reserved character %q", r)}
		default:
			word.WriteRune(r)
		}
	}
	flushWord()
	return o, nil
}

func indexRune(runes []rune, target rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// String renders the elements separated by single spaces.
func (o *Orthography) String() string {
	if o == nil {
		return ""
	}
	parts := make([]string, 0, len(o.Elements))
	for _, e := range o.Elements {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}

// Words returns the word elements' text.
func (o *Orthography) Words() []string {
	if o == nil {
		return nil
	}
	var out []string
	for _, e := range o.Elements {
		if e.Kind == Word {
			out = append(out, e.Text)
		}
	}
	return out
}

package ipa

import "strings"

// Kind classifies an element of a transcript.
type Kind int

const (
	KindConsonant Kind = iota
	KindVowel
	KindWordBoundary
	KindSyllableBoundary
	KindStress
)

func (k Kind) String() string {
	switch k {
	case KindConsonant:
		return "consonant"
	case KindVowel:
		return "vowel"
	case KindWordBoundary:
		return "word-boundary"
	case KindSyllableBoundary:
		return "syllable-boundary"
	case KindStress:
		return "stress"
	default:
		return "unknown"
	}
}

// Constituent is the syllable position assigned to a segment by a syllabifier.
type Constituent int

const (
	Unassigned Constituent = iota
	Onset
	Nucleus
	Coda
	LeftAppendix
	RightAppendix
)

// Code returns the single-letter code used in syllabification strings.
func (c Constituent) Code() string {
	switch c {
	case Onset:
		return "O"
	case Nucleus:
		return "N"
	case Coda:
		return "C"
	case LeftAppendix:
		return "L"
	case RightAppendix:
		return "R"
	default:
		return "U"
	}
}

func (c Constituent) String() string {
	switch c {
	case Onset:
		return "onset"
	case Nucleus:
		return "nucleus"
	case Coda:
		return "coda"
	case LeftAppendix:
		return "left-appendix"
	case RightAppendix:
		return "right-appendix"
	default:
		return "unassigned"
	}
}

// Phone is one element of a transcript. Segments (consonants and vowels) carry
// their base symbol plus any attached diacritics in Text.
type Phone struct {
	Text        string      `json:"text"`
	Kind        Kind        `json:"kind"`
	Syllabic    bool        `json:"syllabic,omitempty"`
	Constituent Constituent `json:"constituent,omitempty"`
}

// IsSegment reports whether p is a consonant or vowel.
func (p *Phone) IsSegment() bool {
	return p != nil && (p.Kind == KindConsonant || p.Kind == KindVowel)
}

// IsVowel reports whether p is a vowel or a syllabic consonant.
func (p *Phone) IsVowel() bool {
	return p != nil && (p.Kind == KindVowel || p.Syllabic)
}

// Base returns the first rune of the phone's text.
func (p *Phone) Base() rune {
	for _, r := range p.Text {
		return r
	}
	return 0
}

const vowels = "aeiouyɑæɐɒɛəɜɪɔøœɶʊʉʌʏɨɯɤɵɘɞɚɝ"

func isVowelRune(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

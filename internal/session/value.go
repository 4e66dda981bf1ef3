package session

import (
	"csv2phon/internal/ipa"
	"csv2phon/internal/orthography"
	"csv2phon/internal/segment"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	KindText        ValueKind = "text"
	KindOrthography ValueKind = "orthography"
	KindIPA         ValueKind = "ipa"
	KindSegment     ValueKind = "segment"
)

// Unvalidated keeps the raw cell text of a value that failed to parse.
type Unvalidated struct {
	Raw   string `json:"raw"`
	Error string `json:"error"`
}

// Value is a field value for one group. Exactly one payload matching Kind is
// set unless Unvalidated is non-nil.
type Value struct {
	Kind        ValueKind                `json:"kind"`
	Text        string                   `json:"text,omitempty"`
	Orthography *orthography.Orthography `json:"orthography,omitempty"`
	IPA         *ipa.Transcript          `json:"ipa,omitempty"`
	Segment     *segment.Segment         `json:"segment,omitempty"`
	Unvalidated *Unvalidated             `json:"unvalidated,omitempty"`
}

func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

func OrthographyValue(o *orthography.Orthography) Value {
	return Value{Kind: KindOrthography, Orthography: o}
}

func IPAValue(t *ipa.Transcript) Value {
	return Value{Kind: KindIPA, IPA: t}
}

func SegmentValue(s segment.Segment) Value {
	return Value{Kind: KindSegment, Segment: &s}
}

// UnvalidatedValue records raw text that could not be parsed as kind.
func UnvalidatedValue(kind ValueKind, raw string, err error) Value {
	u := &Unvalidated{Raw: raw}
	if err != nil {
		u.Error = err.Error()
	}
	return Value{Kind: kind, Unvalidated: u}
}

// IsValid reports whether the value parsed successfully.
func (v Value) IsValid() bool {
	return v.Unvalidated == nil
}

// Transcript returns the parsed transcript of a valid IPA value.
func (v Value) Transcript() (*ipa.Transcript, bool) {
	if v.Kind != KindIPA || v.Unvalidated != nil || v.IPA == nil {
		return nil, false
	}
	return v.IPA, true
}

// String renders the value the way it would be written back to a cell.
func (v Value) String() string {
	if v.Unvalidated != nil {
		return v.Unvalidated.Raw
	}
	switch v.Kind {
	case KindOrthography:
		return v.Orthography.String()
	case KindIPA:
		return v.IPA.String()
	case KindSegment:
		if v.Segment == nil {
			return ""
		}
		return v.Segment.String()
	default:
		return v.Text
	}
}

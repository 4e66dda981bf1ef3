package session

import (
	"github.com/google/uuid"

	"csv2phon/internal/alignment"
)

// Field is a named tier on a record.
type Field struct {
	Name    string  `json:"name"`
	Grouped bool    `json:"grouped"`
	Values  []Value `json:"values"`
}

// Append adds a value as the next group.
func (f *Field) Append(v Value) {
	f.Values = append(f.Values, v)
}

// SetGroup stores v at group index, padding intervening groups with empty
// text values.
func (f *Field) SetGroup(index int, v Value) {
	for len(f.Values) <= index {
		f.Values = append(f.Values, TextValue(""))
	}
	f.Values[index] = v
}

// Group returns the value at index.
func (f *Field) Group(index int) (Value, bool) {
	if f == nil || index < 0 || index >= len(f.Values) {
		return Value{}, false
	}
	return f.Values[index], true
}

// Len is the number of groups held.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Values)
}

// Record is one utterance. Fields keep their insertion order.
type Record struct {
	ID         uuid.UUID             `json:"id"`
	Speaker    string                `json:"speaker,omitempty"`
	Fields     []*Field              `json:"fields"`
	Alignments []*alignment.PhoneMap `json:"alignments,omitempty"`
}

// NewRecord returns an empty record with a fresh id.
func NewRecord() *Record {
	return &Record{ID: uuid.New()}
}

// Field looks up a field by exact name.
func (r *Record) Field(name string) (*Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// EnsureField returns the named field, creating it with the given grouping if
// absent. An existing field keeps its grouping.
func (r *Record) EnsureField(name string, grouped bool) *Field {
	if f, ok := r.Field(name); ok {
		return f
	}
	f := &Field{Name: name, Grouped: grouped}
	r.Fields = append(r.Fields, f)
	return f
}

// FieldNames lists field names in insertion order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	return names
}

// GroupCount is the largest group count across grouped fields, or 1 when the
// record only has scalar fields.
func (r *Record) GroupCount() int {
	count := 0
	scalar := false
	for _, f := range r.Fields {
		if !f.Grouped {
			scalar = true
			continue
		}
		if f.Len() > count {
			count = f.Len()
		}
	}
	if count == 0 && scalar {
		return 1
	}
	return count
}

// SetAlignment attaches m to group index.
func (r *Record) SetAlignment(index int, m *alignment.PhoneMap) {
	for len(r.Alignments) <= index {
		r.Alignments = append(r.Alignments, nil)
	}
	r.Alignments[index] = m
}

// Alignment returns the alignment attached to group index, if any.
func (r *Record) Alignment(index int) (*alignment.PhoneMap, bool) {
	if index < 0 || index >= len(r.Alignments) || r.Alignments[index] == nil {
		return nil, false
	}
	return r.Alignments[index], true
}

// AlignmentCount is the number of groups carrying an alignment.
func (r *Record) AlignmentCount() int {
	n := 0
	for _, m := range r.Alignments {
		if m != nil {
			n++
		}
	}
	return n
}

// LinkAlignments points every alignment at the IPA Target and IPA Actual
// transcripts of its group. Stored sessions carry only the index pairs.
func (r *Record) LinkAlignments() {
	target, _ := r.Field(TierIPATarget)
	actual, _ := r.Field(TierIPAActual)
	for i, m := range r.Alignments {
		if m == nil {
			continue
		}
		tv, _ := target.Group(i)
		av, _ := actual.Group(i)
		m.Target, _ = tv.Transcript()
		m.Actual, _ = av.Transcript()
	}
}

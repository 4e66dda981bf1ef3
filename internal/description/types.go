package description

import (
	"fmt"
	"strings"
	"time"

	"csv2phon/internal/language"
	"csv2phon/internal/session"
)

// DontImport is the target field that suppresses a column.
const DontImport = "Don't import"

// Description is a complete import description.
type Description struct {
	Corpus       string                `toml:"corpus" yaml:"corpus"`
	Columns      []ColumnMap           `toml:"column" yaml:"column"`
	Participants []ParticipantTemplate `toml:"participant" yaml:"participant"`
	Files        []FileEntry           `toml:"file" yaml:"file"`
}

// ColumnMap maps one CSV column onto a record field. Grouped stays nil when
// the document omits it; IsGrouped applies the default.
type ColumnMap struct {
	CSVColumn   string `toml:"csv_column" yaml:"csv_column"`
	TargetField string `toml:"target_field" yaml:"target_field"`
	Grouped     *bool  `toml:"grouped,omitempty" yaml:"grouped,omitempty"`
	Filter      string `toml:"filter,omitempty" yaml:"filter,omitempty"`
	Syllabifier string `toml:"syllabifier,omitempty" yaml:"syllabifier,omitempty"`
}

// IsGrouped reports the column's grouping, true when unset.
func (c ColumnMap) IsGrouped() bool {
	return c.Grouped == nil || *c.Grouped
}

// IsDontImport reports whether the column is suppressed.
func (c ColumnMap) IsDontImport() bool {
	return strings.EqualFold(strings.TrimSpace(c.TargetField), DontImport)
}

// ParticipantTemplate declares a participant added to every imported session.
type ParticipantTemplate struct {
	ID        string `toml:"id" yaml:"id"`
	Name      string `toml:"name,omitempty" yaml:"name,omitempty"`
	Role      string `toml:"role,omitempty" yaml:"role,omitempty"`
	Sex       string `toml:"sex,omitempty" yaml:"sex,omitempty"`
	Birthday  string `toml:"birthday,omitempty" yaml:"birthday,omitempty"`
	Language  string `toml:"language,omitempty" yaml:"language,omitempty"`
	Education string `toml:"education,omitempty" yaml:"education,omitempty"`
	Group     string `toml:"group,omitempty" yaml:"group,omitempty"`
}

// ToParticipant builds a fresh participant from the template. A malformed
// birthday is reported alongside the participant, which is still usable.
func (p ParticipantTemplate) ToParticipant() (*session.Participant, error) {
	out := &session.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Role:      session.Role(p.Role),
		Sex:       p.Sex,
		Language:  language.NormalizeList(p.Language),
		Education: p.Education,
		Group:     p.Group,
	}
	if out.Role == "" {
		out.Role = session.RoleParticipant
	}
	if p.Birthday == "" {
		return out, nil
	}
	birthday, err := time.Parse(session.DateLayout, p.Birthday)
	if err != nil {
		return out, fmt.Errorf("participant %s birthday %q: %w", p.ID, p.Birthday, err)
	}
	out.Birthday = &birthday
	return out, nil
}

// FileEntry names one CSV file and the session it becomes.
type FileEntry struct {
	Location string `toml:"location" yaml:"location"`
	Session  string `toml:"session" yaml:"session"`
	Date     string `toml:"date,omitempty" yaml:"date,omitempty"`
	Media    string `toml:"media,omitempty" yaml:"media,omitempty"`
	Import   *bool  `toml:"import,omitempty" yaml:"import,omitempty"`
}

// ShouldImport reports whether the entry is selected, true when unset.
func (f FileEntry) ShouldImport() bool {
	return f.Import == nil || *f.Import
}

// ParseDate parses the entry's date. ok is false when no date is set.
func (f FileEntry) ParseDate() (date time.Time, ok bool, err error) {
	if strings.TrimSpace(f.Date) == "" {
		return time.Time{}, false, nil
	}
	date, err = time.Parse(session.DateLayout, strings.TrimSpace(f.Date))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("session date %q: %w", f.Date, err)
	}
	return date, true, nil
}

// ColumnFor returns the first column map whose CSV column equals header.
func (d *Description) ColumnFor(header string) (*ColumnMap, bool) {
	for i := range d.Columns {
		if d.Columns[i].CSVColumn == header {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// ColumnForTarget returns the first column map targeting field, ignoring case.
func (d *Description) ColumnForTarget(field string) (*ColumnMap, bool) {
	for i := range d.Columns {
		if strings.EqualFold(strings.TrimSpace(d.Columns[i].TargetField), field) {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// ImportFiles returns the entries selected for import, in order.
func (d *Description) ImportFiles() []FileEntry {
	var out []FileEntry
	for _, f := range d.Files {
		if f.ShouldImport() {
			out = append(out, f)
		}
	}
	return out
}

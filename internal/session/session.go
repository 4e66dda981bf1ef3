package session

import (
	"strings"
	"time"
)

// Reserved tier names.
const (
	TierOrthography = "Orthography"
	TierIPATarget   = "IPA Target"
	TierIPAActual   = "IPA Actual"
	TierNotes       = "Notes"
	TierSegment     = "Segment"
)

// DateLayout is the layout of session dates in import descriptions.
const DateLayout = "2006-01-02"

// TierDescription declares a user-defined tier.
type TierDescription struct {
	Name    string `json:"name"`
	Grouped bool   `json:"grouped"`
}

// TierViewItem is one entry of the session's tier display order.
type TierViewItem struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Session is one imported transcript.
type Session struct {
	Corpus       string            `json:"corpus"`
	Name         string            `json:"name"`
	Date         *time.Time        `json:"date,omitempty"`
	Media        string            `json:"media,omitempty"`
	Participants []*Participant    `json:"participants"`
	Tiers        []TierDescription `json:"tiers"`
	TierView     []TierViewItem    `json:"tier_view"`
	Records      []*Record         `json:"records"`
}

// New returns an empty session with the default tier view.
func New(corpus, name string) *Session {
	return &Session{
		Corpus:   corpus,
		Name:     name,
		TierView: DefaultTierView(),
	}
}

// DefaultTierView lists the reserved tiers in display order.
func DefaultTierView() []TierViewItem {
	names := []string{TierOrthography, TierIPATarget, TierIPAActual, TierNotes, TierSegment}
	view := make([]TierViewItem, 0, len(names))
	for _, name := range names {
		view = append(view, TierViewItem{Name: name, Visible: true})
	}
	return view
}

// IsReservedTier reports whether name is a reserved tier, ignoring case.
func IsReservedTier(name string) bool {
	for _, reserved := range []string{TierOrthography, TierIPATarget, TierIPAActual, TierNotes, TierSegment} {
		if strings.EqualFold(strings.TrimSpace(name), reserved) {
			return true
		}
	}
	return false
}

// SetDate sets the session date and refreshes participant ages.
func (s *Session) SetDate(date time.Time) {
	s.Date = &date
	for _, p := range s.Participants {
		p.UpdateAge(s.Date)
	}
}

// AddParticipant appends p, deriving its age from the session date.
func (s *Session) AddParticipant(p *Participant) {
	p.UpdateAge(s.Date)
	s.Participants = append(s.Participants, p)
}

// ParticipantByDisplayName finds a participant by exact, case-sensitive
// display name.
func (s *Session) ParticipantByDisplayName(name string) (*Participant, bool) {
	for _, p := range s.Participants {
		if p.DisplayName() == name {
			return p, true
		}
	}
	return nil, false
}

// ParticipantByID finds a participant by id.
func (s *Session) ParticipantByID(id string) (*Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// HasTier reports whether a user tier named name is declared.
func (s *Session) HasTier(name string) bool {
	for _, t := range s.Tiers {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AddTier declares a user tier and appends it to the tier view. It returns
// false without changes when the tier already exists.
func (s *Session) AddTier(desc TierDescription) bool {
	if s.HasTier(desc.Name) {
		return false
	}
	s.Tiers = append(s.Tiers, desc)
	s.TierView = append(s.TierView, TierViewItem{Name: desc.Name, Visible: true})
	return true
}

// AddRecord appends r.
func (s *Session) AddRecord(r *Record) {
	s.Records = append(s.Records, r)
}

// RemoveRecord drops the record at index.
func (s *Session) RemoveRecord(index int) {
	if index < 0 || index >= len(s.Records) {
		return
	}
	s.Records = append(s.Records[:index], s.Records[index+1:]...)
}

package session

import (
	"fmt"
	"time"
)

// Role is a participant's role in the session.
type Role string

const (
	RoleParticipant  Role = "Participant"
	RoleTargetChild  Role = "Target Child"
	RoleInvestigator Role = "Investigator"
	RoleMother       Role = "Mother"
	RoleFather       Role = "Father"
)

// Participant is a speaker in a session.
type Participant struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Role      Role       `json:"role"`
	Sex       string     `json:"sex,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Age       string     `json:"age,omitempty"`
	Language  string     `json:"language,omitempty"`
	Education string     `json:"education,omitempty"`
	Group     string     `json:"group,omitempty"`
}

// DisplayName is the participant's name, or its id when unnamed.
func (p *Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// UpdateAge derives Age from Birthday as of date. Nothing changes when either
// is unset or the date precedes the birthday.
func (p *Participant) UpdateAge(date *time.Time) {
	if p.Birthday == nil || date == nil {
		return
	}
	if age, ok := FormatAge(*p.Birthday, *date); ok {
		p.Age = age
	}
}

// FormatAge renders the elapsed time between birthday and date as
// "years;months.days".
func FormatAge(birthday, date time.Time) (string, bool) {
	if date.Before(birthday) {
		return "", false
	}
	years := date.Year() - birthday.Year()
	months := int(date.Month()) - int(birthday.Month())
	days := date.Day() - birthday.Day()
	if days < 0 {
		months--
		// Days in the month preceding date.
		days += time.Date(date.Year(), date.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if months < 0 {
		years--
		months += 12
	}
	return fmt.Sprintf("%d;%02d.%02d", years, months, days), true
}

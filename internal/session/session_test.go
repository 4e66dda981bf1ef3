package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"csv2phon/internal/alignment"
	"csv2phon/internal/ipa"
	"csv2phon/internal/orthography"
)

func TestAddTierIsIdempotent(t *testing.T) {
	s := New("corpus", "s1")
	base := len(s.TierView)
	if !s.AddTier(TierDescription{Name: "Gloss", Grouped: true}) {
		t.Fatal("expected first declaration to be added")
	}
	if s.AddTier(TierDescription{Name: "Gloss", Grouped: false}) {
		t.Fatal("expected duplicate declaration to be ignored")
	}
	if len(s.Tiers) != 1 || !s.Tiers[0].Grouped {
		t.Fatalf("unexpected tiers %+v", s.Tiers)
	}
	if len(s.TierView) != base+1 || s.TierView[base].Name != "Gloss" {
		t.Fatalf("unexpected tier view %+v", s.TierView)
	}
}

func TestParticipantLookupIsCaseSensitive(t *testing.T) {
	s := New("corpus", "s1")
	s.AddParticipant(&Participant{ID: "CHI", Name: "Anna", Role: RoleTargetChild})
	s.AddParticipant(&Participant{ID: "MOT", Role: RoleMother})

	if p, ok := s.ParticipantByDisplayName("Anna"); !ok || p.ID != "CHI" {
		t.Fatalf("expected Anna to resolve to CHI, got %+v", p)
	}
	if _, ok := s.ParticipantByDisplayName("anna"); ok {
		t.Fatal("display name match must be case-sensitive")
	}
	if p, ok := s.ParticipantByDisplayName("MOT"); !ok || p.Role != RoleMother {
		t.Fatal("unnamed participant should match by id")
	}
}

func TestParticipantAgeFollowsSessionDate(t *testing.T) {
	s := New("corpus", "s1")
	birthday := time.Date(2020, time.March, 20, 0, 0, 0, 0, time.UTC)
	p := &Participant{ID: "CHI", Birthday: &birthday}
	s.AddParticipant(p)
	if p.Age != "" {
		t.Fatalf("age should stay unset without a date, got %q", p.Age)
	}
	s.SetDate(time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC))
	if p.Age != "2;10.21" {
		t.Fatalf("unexpected age %q", p.Age)
	}
	if _, ok := FormatAge(birthday, birthday.AddDate(0, 0, -1)); ok {
		t.Fatal("expected no age before birthday")
	}
}

func TestFieldGrouping(t *testing.T) {
	r := NewRecord()
	gloss := r.EnsureField("Gloss", false)
	gloss.SetGroup(0, TextValue("x"))
	gloss.SetGroup(0, TextValue("y"))
	if gloss.Len() != 1 || gloss.Values[0].Text != "y" {
		t.Fatalf("scalar field should hold a single group, got %+v", gloss.Values)
	}
	ipaField := r.EnsureField(TierIPATarget, true)
	ipaField.Append(IPAValue(ipa.MustParse("a")))
	ipaField.Append(UnvalidatedValue(KindIPA, "3", errors.New("bad")))
	if r.GroupCount() != 2 {
		t.Fatalf("unexpected group count %d", r.GroupCount())
	}
	v, _ := ipaField.Group(1)
	if v.IsValid() || v.String() != "3" {
		t.Fatalf("unexpected unvalidated value %+v", v)
	}
	if _, ok := v.Transcript(); ok {
		t.Fatal("unvalidated value has no transcript")
	}
	if same := r.EnsureField("Gloss", true); same != gloss || same.Grouped {
		t.Fatal("EnsureField should return the existing field unchanged")
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	s := New("corpus", "s1")
	s.SetDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	s.AddParticipant(&Participant{ID: "PAR", Role: RoleParticipant})
	r := NewRecord()
	r.Speaker = "PAR"
	o, err := orthography.Parse("hello")
	if err != nil {
		t.Fatalf("orthography: %v", err)
	}
	r.EnsureField(TierOrthography, true).Append(OrthographyValue(o))
	r.EnsureField(TierIPATarget, true).Append(IPAValue(ipa.MustParse("hɛlo")))
	r.EnsureField(TierIPAActual, true).Append(IPAValue(ipa.MustParse("hɛ")))
	r.SetAlignment(0, &alignment.PhoneMap{Pairs: []alignment.Pair{{Target: 0, Actual: 0}}})
	s.AddRecord(r)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Session
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Records) != 1 || back.Records[0].ID != r.ID {
		t.Fatalf("unexpected records %+v", back.Records)
	}
	f, ok := back.Records[0].Field(TierIPATarget)
	if !ok {
		t.Fatal("missing IPA Target field")
	}
	if v, _ := f.Group(0); v.String() != "hɛlo" {
		t.Fatalf("unexpected transcript %q", v.String())
	}
	if back.Records[0].AlignmentCount() != 1 {
		t.Fatal("expected alignment to survive round trip")
	}
	back.Records[0].LinkAlignments()
	if m, _ := back.Records[0].Alignment(0); m.String() != "h=h" {
		t.Fatalf("unexpected linked alignment %q", m.String())
	}
}

func TestReservedTierNames(t *testing.T) {
	for _, name := range []string{"orthography", "IPA TARGET", " ipa actual ", "Notes", "segment"} {
		if !IsReservedTier(name) {
			t.Fatalf("expected %q to be reserved", name)
		}
	}
	if IsReservedTier("Gloss") {
		t.Fatal("Gloss is not reserved")
	}
}

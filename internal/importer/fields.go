package importer

import (
	"strings"

	"csv2phon/internal/description"
	"csv2phon/internal/session"
)

// SpeakerField is the target field that names each row's speaker.
const SpeakerField = "Speaker:Name"

// FieldKind is the closed set of target field kinds.
type FieldKind int

const (
	FieldUserTier FieldKind = iota
	FieldOrthography
	FieldIPATarget
	FieldIPAActual
	FieldNotes
	FieldSegment
	FieldSpeaker
	FieldDontImport
)

func (k FieldKind) String() string {
	switch k {
	case FieldOrthography:
		return "orthography"
	case FieldIPATarget:
		return "ipa-target"
	case FieldIPAActual:
		return "ipa-actual"
	case FieldNotes:
		return "notes"
	case FieldSegment:
		return "segment"
	case FieldSpeaker:
		return "speaker"
	case FieldDontImport:
		return "dont-import"
	default:
		return "user-tier"
	}
}

// IsReserved reports whether the kind maps onto a reserved tier.
func (k FieldKind) IsReserved() bool {
	switch k {
	case FieldOrthography, FieldIPATarget, FieldIPAActual, FieldNotes, FieldSegment:
		return true
	}
	return false
}

// TierName returns the canonical tier name for reserved kinds.
func (k FieldKind) TierName() string {
	switch k {
	case FieldOrthography:
		return session.TierOrthography
	case FieldIPATarget:
		return session.TierIPATarget
	case FieldIPAActual:
		return session.TierIPAActual
	case FieldNotes:
		return session.TierNotes
	case FieldSegment:
		return session.TierSegment
	}
	return ""
}

var reservedKinds = map[string]FieldKind{
	strings.ToLower(session.TierOrthography): FieldOrthography,
	strings.ToLower(session.TierIPATarget):   FieldIPATarget,
	strings.ToLower(session.TierIPAActual):   FieldIPAActual,
	strings.ToLower(session.TierNotes):       FieldNotes,
	strings.ToLower(session.TierSegment):     FieldSegment,
}

// ResolveField classifies a target field name. Reserved tier names and
// "Don't import" match case-insensitively; the speaker field matches exactly.
func ResolveField(target string) FieldKind {
	name := strings.TrimSpace(target)
	if name == SpeakerField {
		return FieldSpeaker
	}
	if strings.EqualFold(name, description.DontImport) {
		return FieldDontImport
	}
	if kind, ok := reservedKinds[strings.ToLower(name)]; ok {
		return kind
	}
	return FieldUserTier
}

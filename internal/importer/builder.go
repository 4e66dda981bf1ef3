package importer

import (
	"log/slog"
	"strconv"
	"strings"

	"csv2phon/internal/ipa"
	"csv2phon/internal/logging"
	"csv2phon/internal/orthography"
	"csv2phon/internal/segment"
	"csv2phon/internal/session"
)

// RecordBuilder turns data rows into records of one session. It owns the
// participant synthesis counter, so a builder must not be shared across
// sessions.
type RecordBuilder struct {
	sess     *session.Session
	bindings Bindings
	header   []string
	logger   *slog.Logger
	created  int
}

// NewRecordBuilder returns a builder appending records to sess.
func NewRecordBuilder(sess *session.Session, header []string, bindings Bindings, logger *slog.Logger) *RecordBuilder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RecordBuilder{sess: sess, bindings: bindings, header: header, logger: logger}
}

// Build creates the record for row, appends it to the session, and returns
// it. Short rows are padded with empty cells and long rows are truncated to
// the header width. Cell parse failures never abort the row.
func (b *RecordBuilder) Build(row []string, rowNum int) *session.Record {
	rec := session.NewRecord()
	b.sess.AddRecord(rec)

	for col, policy := range b.bindings {
		raw := ""
		if col < len(row) {
			raw = row[col]
		}
		if policy == nil {
			logging.WarnWithContext(b.logger, "no column map for csv column",
				"column_unmapped",
				logging.String(logging.FieldColumn, b.header[col]),
				logging.Int(logging.FieldRow, rowNum),
				logging.String(logging.FieldImpact, "column values dropped"),
			)
			continue
		}

		switch policy.Kind {
		case FieldDontImport:
			continue
		case FieldSpeaker:
			b.applySpeaker(rec, raw, rowNum)
		case FieldOrthography:
			field := rec.EnsureField(policy.Field, true)
			for _, group := range SplitGroups(raw, policy.Grouped) {
				o, err := orthography.Parse(group)
				if err != nil {
					b.fieldFailure(policy, rowNum, len(field.Values), err)
					field.Append(session.UnvalidatedValue(session.KindOrthography, group, err))
					continue
				}
				field.Append(session.OrthographyValue(o))
			}
		case FieldIPATarget, FieldIPAActual:
			field := rec.EnsureField(policy.Field, true)
			for _, group := range SplitGroups(raw, policy.Grouped) {
				if policy.Converter != nil {
					group = policy.Converter.Convert(group)
				}
				group = strings.TrimSpace(group)
				t, err := ipa.Parse(group)
				if err != nil {
					b.fieldFailure(policy, rowNum, len(field.Values), err)
					field.Append(session.UnvalidatedValue(session.KindIPA, group, err))
					continue
				}
				field.Append(session.IPAValue(t))
			}
		case FieldNotes:
			rec.EnsureField(policy.Field, false).Append(session.TextValue(raw))
		case FieldSegment:
			field := rec.EnsureField(policy.Field, false)
			seg, err := segment.ParseOrZero(raw)
			if err != nil {
				b.fieldFailure(policy, rowNum, 0, err)
			}
			field.Append(session.SegmentValue(seg))
		default:
			field := rec.EnsureField(policy.Field, policy.Grouped)
			if !field.Grouped {
				field.SetGroup(0, session.TextValue(raw))
				continue
			}
			for _, group := range SplitGroups(raw, true) {
				field.Append(session.TextValue(group))
			}
		}
	}
	return rec
}

func (b *RecordBuilder) applySpeaker(rec *session.Record, name string, rowNum int) {
	if name == "" {
		b.logger.Debug("row has no speaker", logging.Int(logging.FieldRow, rowNum))
		return
	}
	if p, ok := b.sess.ParticipantByDisplayName(name); ok {
		rec.Speaker = p.ID
		return
	}
	p := &session.Participant{
		ID:   b.nextParticipantID(),
		Name: name,
		Role: session.RoleParticipant,
	}
	b.sess.AddParticipant(p)
	rec.Speaker = p.ID
	b.logger.Info("added participant",
		logging.String("participant_id", p.ID),
		logging.String("participant_name", name),
		logging.Int(logging.FieldRow, rowNum),
	)
}

func (b *RecordBuilder) fieldFailure(policy *ColumnPolicy, rowNum, group int, err error) {
	ferr := &FieldError{Field: policy.Field, Row: rowNum, Group: group, Err: err}
	logging.WarnWithContext(b.logger, "cell value did not parse",
		"field_parse_failed",
		logging.String(logging.FieldColumn, policy.Header),
		logging.String(logging.FieldField, policy.Field),
		logging.Int(logging.FieldRow, rowNum),
		logging.Int(logging.FieldGroup, group),
		logging.Error(ferr),
		logging.String(logging.FieldImpact, "value stored unvalidated"),
	)
}

// nextParticipantID returns the next synthesized id not already held by a
// participant of the session, so template ids such as "PAR" are never reused.
func (b *RecordBuilder) nextParticipantID() string {
	for {
		id := SynthesizedParticipantID(b.created)
		b.created++
		if _, taken := b.sess.ParticipantByID(id); !taken {
			return id
		}
	}
}

// SynthesizedParticipantID returns the id of the n-th participant created from
// speaker names: "PAR" for the first, then "PA1", "PA2", and so on.
func SynthesizedParticipantID(n int) string {
	if n > 0 {
		return "PA" + strconv.Itoa(n)
	}
	return "PAR"
}

// SplitGroups splits bracketed group syntax "[a][b]" into its groups when
// grouped is set. Anything else is a single group holding the raw value.
func SplitGroups(raw string, grouped bool) []string {
	if !grouped || !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return []string{raw}
	}
	pieces := strings.Split(raw, "[")
	groups := make([]string, 0, len(pieces)-1)
	for _, piece := range pieces[1:] {
		groups = append(groups, strings.ReplaceAll(piece, "]", ""))
	}
	return groups
}

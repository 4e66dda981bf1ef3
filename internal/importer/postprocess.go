package importer

import (
	"log/slog"

	"csv2phon/internal/alignment"
	"csv2phon/internal/description"
	"csv2phon/internal/ipa"
	"csv2phon/internal/logging"
	"csv2phon/internal/session"
	"csv2phon/internal/syllabifier"
)

// SyllabifierLookup resolves syllabifiers by language tag.
type SyllabifierLookup interface {
	ForLanguage(tag string) (syllabifier.Syllabifier, bool)
}

// Aligner computes the phone alignment of a target and actual transcript.
type Aligner interface {
	Align(target, actual *ipa.Transcript) *alignment.PhoneMap
}

// PostProcessor syllabifies and aligns the phonetic groups of records. It is
// inert unless the description maps both IPA Target and IPA Actual.
type PostProcessor struct {
	enabled        bool
	targetLanguage string
	actualLanguage string
	target         syllabifier.Syllabifier
	actual         syllabifier.Syllabifier
	aligner        Aligner
	logger         *slog.Logger
}

// NewPostProcessor resolves the syllabifiers once for desc. The language comes
// from the IPA Target column map, falling back to defaultLanguage. The actual
// side reads the same target column map.
func NewPostProcessor(desc *description.Description, library SyllabifierLookup, aligner Aligner, defaultLanguage string, logger *slog.Logger) *PostProcessor {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &PostProcessor{aligner: aligner, logger: logger}
	targetMap, hasTarget := desc.ColumnForTarget(session.TierIPATarget)
	_, hasActual := desc.ColumnForTarget(session.TierIPAActual)
	if !hasTarget || !hasActual || aligner == nil {
		return p
	}
	p.enabled = true

	p.targetLanguage = targetMap.Syllabifier
	if p.targetLanguage == "" {
		p.targetLanguage = defaultLanguage
	}
	// TODO: read the actual language from the IPA Actual column map once
	// descriptions in the wild are checked for a divergent setting there.
	p.actualLanguage = targetMap.Syllabifier
	if p.actualLanguage == "" {
		p.actualLanguage = defaultLanguage
	}

	if library != nil {
		p.target, _ = library.ForLanguage(p.targetLanguage)
		p.actual, _ = library.ForLanguage(p.actualLanguage)
	}
	if p.target == nil {
		logging.WarnWithContext(logger, "no syllabifier for language",
			"syllabifier_missing",
			logging.String("language", p.targetLanguage),
			logging.String(logging.FieldImpact, "transcripts aligned without syllabification"),
		)
	}
	return p
}

// Enabled reports whether records will be processed.
func (p *PostProcessor) Enabled() bool {
	return p != nil && p.enabled
}

// Process syllabifies every parsed target and actual group of r in place and
// attaches one alignment to each group whose target and actual transcripts
// both parsed and are non-empty. It returns the number of alignments attached.
func (p *PostProcessor) Process(r *session.Record) int {
	if !p.Enabled() {
		return 0
	}
	targetField, _ := r.Field(session.TierIPATarget)
	actualField, _ := r.Field(session.TierIPAActual)
	groups := max(targetField.Len(), actualField.Len())

	aligned := 0
	for i := 0; i < groups; i++ {
		targetValue, _ := targetField.Group(i)
		actualValue, _ := actualField.Group(i)
		target, targetOK := targetValue.Transcript()
		actual, actualOK := actualValue.Transcript()

		if targetOK && p.target != nil {
			p.target.Syllabify(target.Phones)
		}
		if actualOK && p.actual != nil {
			p.actual.Syllabify(actual.Phones)
		}
		if !targetOK || !actualOK || target.IsEmpty() || actual.IsEmpty() {
			continue
		}
		r.SetAlignment(i, p.aligner.Align(target, actual))
		aligned++
	}
	return aligned
}

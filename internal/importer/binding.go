package importer

import (
	"log/slog"

	"csv2phon/internal/converter"
	"csv2phon/internal/description"
	"csv2phon/internal/logging"
	"csv2phon/internal/session"
)

// ColumnPolicy is the resolved, immutable handling of one header column.
type ColumnPolicy struct {
	Index     int
	Header    string
	Field     string
	Kind      FieldKind
	Grouped   bool
	Converter converter.Converter
	Language  string
}

// Bindings holds one policy per header column. Unmapped columns are nil.
type Bindings []*ColumnPolicy

// Mapped counts the columns with a policy.
func (b Bindings) Mapped() int {
	n := 0
	for _, p := range b {
		if p != nil {
			n++
		}
	}
	return n
}

// ConverterLookup resolves cell converters by name.
type ConverterLookup interface {
	Lookup(name string) (converter.Converter, bool)
}

// BindHeader resolves every header column against desc. Grouping defaults,
// field kinds, and converters are settled here so rows never consult or
// mutate the description. User tiers are declared on sess once per distinct
// name.
func BindHeader(header []string, desc *description.Description, sess *session.Session, converters ConverterLookup, logger *slog.Logger) Bindings {
	if logger == nil {
		logger = logging.NewNop()
	}
	bindings := make(Bindings, len(header))
	for i, column := range header {
		cm, ok := desc.ColumnFor(column)
		if !ok {
			continue
		}
		policy := &ColumnPolicy{
			Index:    i,
			Header:   column,
			Field:    cm.TargetField,
			Kind:     ResolveField(cm.TargetField),
			Grouped:  cm.IsGrouped(),
			Language: cm.Syllabifier,
		}
		if policy.Kind.IsReserved() {
			policy.Field = policy.Kind.TierName()
		}
		if cm.Filter != "" {
			var found bool
			if converters != nil {
				policy.Converter, found = converters.Lookup(cm.Filter)
			}
			if !found {
				logging.WarnWithContext(logger, "cell converter not found",
					"converter_missing",
					logging.String(logging.FieldColumn, column),
					logging.String("converter", cm.Filter),
					logging.String(logging.FieldImpact, "column values imported without conversion"),
				)
			}
		}
		bindings[i] = policy

		if policy.Kind == FieldUserTier {
			if sess.AddTier(session.TierDescription{Name: policy.Field, Grouped: policy.Grouped}) {
				logger.Debug("declared user tier",
					logging.String(logging.FieldField, policy.Field),
					logging.Bool("grouped", policy.Grouped),
				)
			}
		}
	}
	return bindings
}

package logging

// Standardized structured logging keys.
const (
	FieldComponent = "component"
	FieldCorpus    = "corpus"
	FieldSession   = "session"
	FieldFile      = "file"
	FieldRow       = "row"
	FieldColumn    = "column"
	FieldField     = "field"
	FieldGroup     = "group"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

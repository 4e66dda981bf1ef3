package preflight

import (
	"csv2phon/internal/config"
	"csv2phon/internal/csvio"
	"csv2phon/internal/description"
	"csv2phon/internal/session"
	"csv2phon/internal/syllabifier"
)

// Result reports the outcome of a single preflight check. A passed check may
// still carry a Warning.
type Result struct {
	Name    string
	Passed  bool
	Warning bool
	Detail  string
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// RunAll checks cfg and every selected file of desc. resolve maps a file
// location to the path the importer will open.
func RunAll(cfg *config.Config, desc *description.Description, resolve func(string) string) []Result {
	if cfg == nil || desc == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Project directory", cfg.Paths.ProjectDir),
		CheckReadableDirectory("Base directory", cfg.Paths.BaseDir),
		CheckEncoding(cfg.CSV.Encoding),
	}

	opts := csvio.Options{
		Delimiter: cfg.DelimiterRune(),
		Quote:     cfg.QuoteRune(),
		Encoding:  cfg.CSV.Encoding,
	}
	for _, entry := range desc.ImportFiles() {
		results = append(results, CheckFile(entry.Session, resolve(entry.Location), opts, desc))
	}

	if r, ok := CheckSyllabifier(desc, cfg.Syllabifier.DefaultLanguage, syllabifier.DefaultLibrary()); ok {
		results = append(results, r)
	}
	return results
}

// CheckSyllabifier reports whether the language used for IPA Target has a
// syllabifier. ok is false when the description does not align transcripts.
func CheckSyllabifier(desc *description.Description, defaultLanguage string, library *syllabifier.Library) (Result, bool) {
	target, hasTarget := desc.ColumnForTarget(session.TierIPATarget)
	_, hasActual := desc.ColumnForTarget(session.TierIPAActual)
	if !hasTarget || !hasActual {
		return Result{}, false
	}
	lang := target.Syllabifier
	if lang == "" {
		lang = defaultLanguage
	}
	const name = "Syllabifier"
	if _, ok := library.ForLanguage(lang); !ok {
		return Result{Name: name, Passed: true, Warning: true,
			Detail: lang + " (no syllabifier; transcripts aligned without syllables)"}, true
	}
	return Result{Name: name, Passed: true, Detail: lang}, true
}

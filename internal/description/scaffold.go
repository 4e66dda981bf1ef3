package description

import (
	"path/filepath"
	"strings"

	"csv2phon/internal/session"
)

// speakerTarget mirrors the importer's speaker pseudo-field.
const speakerTarget = "Speaker:Name"

var headerTargets = map[string]string{
	"orthography": session.TierOrthography,
	"ortho":       session.TierOrthography,
	"ipa target":  session.TierIPATarget,
	"target":      session.TierIPATarget,
	"ipa actual":  session.TierIPAActual,
	"actual":      session.TierIPAActual,
	"notes":       session.TierNotes,
	"segment":     session.TierSegment,
	"speaker":     speakerTarget,
	"participant": speakerTarget,
}

// Scaffold builds a starting description for CSV files sharing header.
// Headers that name a reserved tier map onto it; every other column becomes
// a user tier of the same name. Each path becomes a file entry named after
// its base name.
func Scaffold(corpus string, header []string, paths []string) *Description {
	d := &Description{Corpus: strings.TrimSpace(corpus)}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		d.Columns = append(d.Columns, ColumnMap{CSVColumn: h, TargetField: targetForHeader(h)})
	}
	for _, p := range paths {
		d.Files = append(d.Files, FileEntry{Location: p, Session: sessionName(p)})
	}
	return d
}

func targetForHeader(header string) string {
	key := strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(header, "_", " "))), " ")
	if target, ok := headerTargets[key]; ok {
		return target
	}
	return header
}

func sessionName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

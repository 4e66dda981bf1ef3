package description

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2phon/internal/session"
)

func TestScaffoldMapsReservedHeaders(t *testing.T) {
	header := []string{"Speaker", "ortho", "IPA_Target", "ipa actual", "Segment", "Gloss", "Gloss", " "}
	d := Scaffold(" Fieldwork ", header, []string{"data/s01.csv", "s02.tsv"})

	assert.Equal(t, "Fieldwork", d.Corpus)
	require.Len(t, d.Columns, 6)
	targets := make(map[string]string, len(d.Columns))
	for _, c := range d.Columns {
		targets[c.CSVColumn] = c.TargetField
		assert.Nil(t, c.Grouped)
	}
	assert.Equal(t, "Speaker:Name", targets["Speaker"])
	assert.Equal(t, session.TierOrthography, targets["ortho"])
	assert.Equal(t, session.TierIPATarget, targets["IPA_Target"])
	assert.Equal(t, session.TierIPAActual, targets["ipa actual"])
	assert.Equal(t, session.TierSegment, targets["Segment"])
	assert.Equal(t, "Gloss", targets["Gloss"])

	require.Len(t, d.Files, 2)
	assert.Equal(t, "s01", d.Files[0].Session)
	assert.Equal(t, "s02", d.Files[1].Session)
}

func TestScaffoldWritesLoadableDescription(t *testing.T) {
	d := Scaffold("Fieldwork", []string{"Orthography", "Notes"}, []string{"one.csv"})
	path := filepath.Join(t.TempDir(), "desc.yaml")
	require.NoError(t, WriteFile(d, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.Columns, loaded.Columns)
	assert.Equal(t, "one", loaded.Files[0].Session)
	assert.True(t, loaded.Files[0].ShouldImport())
}

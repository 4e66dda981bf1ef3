package description

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2phon/internal/session"
)

const tomlDescription = `
corpus = "Fieldwork"

[[column]]
csv_column = "Speaker"
target_field = "Speaker:Name"

[[column]]
csv_column = "Target"
target_field = "IPA Target"
filter = " xsampa "
syllabifier = "eng"

[[column]]
csv_column = "Gloss"
target_field = "Gloss"
grouped = false

[[column]]
csv_column = "Skip"
target_field = "don't IMPORT"

[[participant]]
id = "CHI"
name = "Anna"
role = "Target Child"
birthday = "2020-03-20"

[[file]]
location = "data/session one.csv"
date = "2023-02-10"

[[file]]
location = "data/two.csv"
session = "Second"
import = false
`

const yamlDescription = `
corpus: Fieldwork
column:
  - csv_column: Orth
    target_field: Orthography
  - csv_column: Actual
    target_field: IPA Actual
    grouped: true
participant:
  - id: MOT
file:
  - location: /abs/one.csv
    session: One
    media: one.wav
`

func TestParseTOML(t *testing.T) {
	d, err := Parse([]byte(tomlDescription), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "Fieldwork", d.Corpus)
	require.Len(t, d.Columns, 4)
	assert.Nil(t, d.Columns[0].Grouped, "grouped must stay unset until use")
	assert.True(t, d.Columns[0].IsGrouped())
	assert.False(t, d.Columns[2].IsGrouped())
	assert.Equal(t, "xsampa", d.Columns[1].Filter)
	assert.Equal(t, "eng", d.Columns[1].Syllabifier)
	assert.True(t, d.Columns[3].IsDontImport())

	require.Len(t, d.Files, 2)
	assert.Equal(t, "session one", d.Files[0].Session)
	assert.True(t, d.Files[0].ShouldImport())
	assert.False(t, d.Files[1].ShouldImport())

	files := d.ImportFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "data/session one.csv", files[0].Location)
}

func TestParseYAML(t *testing.T) {
	d, err := Parse([]byte(yamlDescription), FormatYAML)
	require.NoError(t, err)

	require.Len(t, d.Columns, 2)
	require.NotNil(t, d.Columns[1].Grouped)
	assert.True(t, *d.Columns[1].Grouped)
	assert.Equal(t, "one.wav", d.Files[0].Media)

	col, ok := d.ColumnForTarget("ipa actual")
	require.True(t, ok)
	assert.Equal(t, "Actual", col.CSVColumn)

	_, ok = d.ColumnFor("actual")
	assert.False(t, ok, "header match is exact")
}

func TestColumnForFirstMatchWins(t *testing.T) {
	d := &Description{Columns: []ColumnMap{
		{CSVColumn: "A", TargetField: "First"},
		{CSVColumn: "A", TargetField: "Second"},
	}}
	col, ok := d.ColumnFor("A")
	require.True(t, ok)
	assert.Equal(t, "First", col.TargetField)
}

func TestParticipantTemplate(t *testing.T) {
	d, err := Parse([]byte(tomlDescription), FormatTOML)
	require.NoError(t, err)

	p, err := d.Participants[0].ToParticipant()
	require.NoError(t, err)
	assert.Equal(t, session.RoleTargetChild, p.Role)
	require.NotNil(t, p.Birthday)
	assert.Equal(t, 2020, p.Birthday.Year())

	bad := ParticipantTemplate{ID: "X", Birthday: "20/03/2020"}
	p, err = bad.ToParticipant()
	assert.Error(t, err)
	require.NotNil(t, p)
	assert.Equal(t, session.RoleParticipant, p.Role)
	assert.Nil(t, p.Birthday)

	multi := ParticipantTemplate{ID: "MOT", Language: "English, fr"}
	p, err = multi.ToParticipant()
	require.NoError(t, err)
	assert.Equal(t, "eng fra", p.Language)
}

func TestFileEntryParseDate(t *testing.T) {
	date, ok, err := FileEntry{Date: "2023-02-10"}.ParseDate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10, date.Day())

	_, ok, err = FileEntry{}.ParseDate()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = FileEntry{Date: "10.02.2023"}.ParseDate()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestValidateRequiresCorpusAndLocations(t *testing.T) {
	_, err := Parse([]byte(`
[[column]]
csv_column = "A"

[[file]]
session = "x"
`), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpus is required")
	assert.Contains(t, err.Error(), "column 1: target_field is required")
	assert.Contains(t, err.Error(), "file 1: location is required")
}

func TestLoadFileByExtension(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "desc.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlDescription), 0o644))
	d, err := LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "Fieldwork", d.Corpus)

	ymlPath := filepath.Join(dir, "desc.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte(yamlDescription), 0o644))
	_, err = LoadFile(ymlPath)
	require.NoError(t, err)

	_, err = LoadFile(filepath.Join(dir, "desc.xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteFileRoundTrip(t *testing.T) {
	d, err := Parse([]byte(yamlDescription), FormatYAML)
	require.NoError(t, err)

	for _, name := range []string{"out.toml", "out.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, WriteFile(d, path))
		back, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, d.Corpus, back.Corpus, name)
		assert.Equal(t, d.Columns, back.Columns, name)
		assert.Equal(t, d.Files, back.Files, name)
	}
}

package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"csv2phon/internal/config"
	"csv2phon/internal/description"
	"csv2phon/internal/testsupport"
)

const cliDescription = `
corpus = "Fieldwork"

[[column]]
csv_column = "Speaker"
target_field = "Speaker:Name"

[[column]]
csv_column = "Orthography"
target_field = "Orthography"

[[column]]
csv_column = "Target"
target_field = "IPA Target"

[[column]]
csv_column = "Actual"
target_field = "IPA Actual"

[[participant]]
id = "CHI"
name = "Anna"
role = "Target Child"

[[file]]
location = "s01.csv"
date = "2023-02-10"
`

func TestImportThenInspectProject(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteCSV(t, env.csvDir, "s01.csv", ",",
		[]string{"Speaker", "Orthography", "Target", "Actual"},
		[]string{"Anna", "cat", "kat", "at"},
		[]string{"Mum", "hello", "həlo", "həlo"},
	)
	descPath := writeDescription(t, t.TempDir(), cliDescription)

	out, _, err := runCLI(t, []string{"import", descPath}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	requireContains(t, out, "== Import Fieldwork ==")
	requireContains(t, out, "[OK] 2 records, 2 aligned")
	requireContains(t, out, "1 saved, 0 failed, 0 skipped")

	out, _, err = runCLI(t, []string{"project", "corpora"}, env.configPath)
	if err != nil {
		t.Fatalf("project corpora: %v", err)
	}
	requireContains(t, out, "Fieldwork")

	out, _, err = runCLI(t, []string{"project", "sessions", "Fieldwork"}, env.configPath)
	if err != nil {
		t.Fatalf("project sessions: %v", err)
	}
	requireContains(t, out, "s01")

	out, _, err = runCLI(t, []string{"project", "show", "Fieldwork", "s01", "--alignments"}, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "2023-02-10")
	requireContains(t, out, "Anna")
	requireContains(t, out, "Mum")
	requireContains(t, out, "həlo")
	requireContains(t, out, "Record 1 group 1")
	requireContains(t, out, "a=a t=t")
}

func TestImportReportsFailedFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteCSV(t, env.csvDir, "present.csv", ",",
		[]string{"Orthography"},
		[]string{"hello"},
	)
	descPath := writeDescription(t, t.TempDir(), `
corpus = "Fieldwork"

[[column]]
csv_column = "Orthography"
target_field = "Orthography"

[[file]]
location = "missing.csv"

[[file]]
location = "present.csv"

[[file]]
location = "ignored.csv"
import = false
`)

	out, _, err := runCLI(t, []string{"import", descPath}, env.configPath)
	if err == nil {
		t.Fatal("expected import to report the failed file")
	}
	requireContains(t, err.Error(), "1 of 2 files failed")
	requireContains(t, out, "[ERROR] not_found")
	requireContains(t, out, "1 saved, 1 failed, 1 skipped")
}

func TestImportFlagsOverrideDialect(t *testing.T) {
	env := setupCLITestEnv(t)
	other := t.TempDir()
	testsupport.WriteCSV(t, other, "s01.csv", "\t",
		[]string{"Orthography", "Notes"},
		[]string{"hello", "'first, take'"},
	)
	descPath := writeDescription(t, t.TempDir(), `
corpus = "Fieldwork"

[[column]]
csv_column = "Orthography"
target_field = "Orthography"

[[column]]
csv_column = "Notes"
target_field = "Notes"

[[file]]
location = "s01.csv"
`)
	logFile := filepath.Join(t.TempDir(), "import.log")

	args := []string{"import", descPath, "--base", other, "--delimiter", `\t`, "--quote", "'", "--log-file", logFile}
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	requireContains(t, out, "[OK] 1 records")

	out, _, err = runCLI(t, []string{"project", "show", "Fieldwork", "s01"}, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "hello")
}

func TestImportFlagsValidate(t *testing.T) {
	cfg := config.Default()
	if err := (importFlags{delimiter: ";;"}).apply(&cfg); err == nil {
		t.Fatal("expected multi-character delimiter to be rejected")
	}
	cfg = config.Default()
	if err := (importFlags{delimiter: `\t`, encoding: "windows-1252"}).apply(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.CSV.Delimiter != "\t" || cfg.CSV.Encoding != "windows-1252" {
		t.Fatalf("unexpected dialect %+v", cfg.CSV)
	}
}

func TestDescribeScaffoldsDescription(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := testsupport.WriteCSV(t, env.csvDir, "s07.csv", ",",
		[]string{"Speaker", "Orthography", "IPA Target", "Gloss"},
		[]string{"Anna", "cat", "kat", "animal"},
	)
	output := filepath.Join(t.TempDir(), "scaffold.yaml")

	out, _, err := runCLI(t, []string{"describe", csvPath, "--corpus", "Fieldwork", "-o", output}, env.configPath)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("4 columns and 1 files to %s", output))

	desc, err := description.LoadFile(output)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	col, ok := desc.ColumnFor("Gloss")
	if !ok || col.TargetField != "Gloss" {
		t.Fatalf("expected Gloss user tier, got %+v", col)
	}
	col, ok = desc.ColumnFor("Speaker")
	if !ok || col.TargetField != "Speaker:Name" {
		t.Fatalf("expected speaker mapping, got %+v", col)
	}
	if len(desc.Files) != 1 || desc.Files[0].Session != "s07" {
		t.Fatalf("unexpected files %+v", desc.Files)
	}

	if _, _, err := runCLI(t, []string{"describe", csvPath}, env.configPath); err == nil {
		t.Fatal("expected describe without --corpus to fail")
	}
}

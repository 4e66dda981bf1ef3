package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csv2phon/internal/logging"
	"csv2phon/internal/project"
	"csv2phon/internal/testsupport"
)

func TestCheckReportsMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteCSV(t, env.csvDir, "present.csv", ",", []string{"Orthography", "Gloss"}, []string{"hi", "greeting"})
	descPath := writeDescription(t, t.TempDir(), `
corpus = "Fieldwork"

[[column]]
csv_column = "Orthography"
target_field = "Orthography"

[[file]]
location = "present.csv"

[[file]]
location = "missing.csv"
`)

	out, _, err := runCLI(t, []string{"check", descPath}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail for the missing file")
	}
	requireContains(t, err.Error(), "1 checks failed")
	requireContains(t, out, "[WARN]")
	requireContains(t, out, "unmapped: Gloss")
	requireContains(t, out, "does not exist")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ProjectDir, project.DatabaseName)); !os.IsNotExist(err) {
		t.Fatalf("check must not create the project store, stat err=%v", err)
	}
}

func TestLogsPrintsFilteredTail(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.cfg.Paths.LogDir, logging.FileName)
	testsupport.WriteFile(t, path, "INFO session=s01 import started\nWARN session=s02 column unmapped\nINFO session=s01 import finished\n")

	out, _, err := runCLI(t, []string{"logs", "--match", "session=s01", "-n", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "import finished")
	if strings.Contains(out, "s02") || strings.Contains(out, "import started") {
		t.Fatalf("unexpected logs output %q", out)
	}
}

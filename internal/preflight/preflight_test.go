package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csv2phon/internal/csvio"
	"csv2phon/internal/description"
	"csv2phon/internal/syllabifier"
	"csv2phon/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckReadableDirectory_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckReadableDirectory("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckEncoding(t *testing.T) {
	if r := CheckEncoding("windows-1252"); !r.Passed {
		t.Fatalf("expected windows-1252 to resolve: %s", r.Detail)
	}
	if r := CheckEncoding("klingon-8"); r.Passed {
		t.Fatal("expected unknown encoding to fail")
	}
}

func TestCheckFileReportsUnmappedColumns(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteCSV(t, dir, "s01.csv", ",", []string{"Orthography", "Extra"}, []string{"hi", "x"})
	desc := &description.Description{Corpus: "c", Columns: []description.ColumnMap{
		{CSVColumn: "Orthography", TargetField: "Orthography"},
		{CSVColumn: "Target", TargetField: "IPA Target"},
		{CSVColumn: "Old", TargetField: description.DontImport},
	}}

	r := CheckFile("s01", path, csvio.Options{}, desc)
	if !r.Passed || !r.Warning {
		t.Fatalf("expected passing warning, got %+v", r)
	}
	if !strings.Contains(r.Detail, "unmapped: Extra") || !strings.Contains(r.Detail, "not in header: Target") {
		t.Fatalf("unexpected detail %q", r.Detail)
	}
	if strings.Contains(r.Detail, "Old") {
		t.Fatalf("suppressed column should not be reported: %q", r.Detail)
	}

	empty := filepath.Join(dir, "empty.csv")
	testsupport.WriteFile(t, empty, "")
	if r := CheckFile("empty", empty, csvio.Options{}, desc); r.Passed {
		t.Fatal("expected empty file to fail")
	}
	if r := CheckFile("missing", filepath.Join(dir, "absent.csv"), csvio.Options{}, desc); r.Passed {
		t.Fatal("expected missing file to fail")
	}
}

func TestCheckSyllabifier(t *testing.T) {
	desc := &description.Description{Columns: []description.ColumnMap{
		{CSVColumn: "T", TargetField: "IPA Target", Syllabifier: "zu"},
		{CSVColumn: "A", TargetField: "IPA Actual"},
	}}
	r, ok := CheckSyllabifier(desc, "eng", syllabifier.DefaultLibrary())
	if !ok || !r.Warning {
		t.Fatalf("expected warning for zu, got %+v", r)
	}
	desc.Columns[0].Syllabifier = ""
	if r, _ := CheckSyllabifier(desc, "eng", syllabifier.DefaultLibrary()); r.Warning {
		t.Fatalf("expected eng to resolve, got %+v", r)
	}
	if _, ok := CheckSyllabifier(&description.Description{}, "eng", syllabifier.DefaultLibrary()); ok {
		t.Fatal("expected no check without both IPA tiers")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteCSV(t, cfg.Paths.BaseDir, "s01.csv", ",", []string{"Orthography"}, []string{"hi"})
	skip := false
	desc := &description.Description{
		Corpus:  "c",
		Columns: []description.ColumnMap{{CSVColumn: "Orthography", TargetField: "Orthography"}},
		Files: []description.FileEntry{
			{Location: "s01.csv", Session: "s01"},
			{Location: "s02.csv", Session: "s02"},
			{Location: "s03.csv", Session: "s03", Import: &skip},
		},
	}
	resolve := func(loc string) string { return filepath.Join(cfg.Paths.BaseDir, loc) }

	results := RunAll(cfg, desc, resolve)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if Failed(results) != 1 || results[4].Passed {
		t.Fatalf("expected only s02 to fail, got %+v", results)
	}
	if RunAll(nil, desc, resolve) != nil {
		t.Fatal("expected nil results for nil config")
	}
}

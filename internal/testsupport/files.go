package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCSV writes rows joined by delimiter under dir/name and returns the
// path. Cells are written verbatim, so callers quote them as needed.
func WriteCSV(t testing.TB, dir, name string, delimiter string, rows ...[]string) string {
	t.Helper()

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, delimiter))
		b.WriteByte('\n')
	}
	path := filepath.Join(dir, name)
	WriteFile(t, path, b.String())
	return path
}

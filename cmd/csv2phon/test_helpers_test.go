package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csv2phon/internal/config"
	"csv2phon/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	csvDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("CSV2PHON_PROJECT_DIR", "")

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	if err := os.MkdirAll(cfg.Paths.BaseDir, 0o755); err != nil {
		t.Fatalf("mkdir csv dir: %v", err)
	}

	configPath := filepath.Join(homeDir, ".config", "csv2phon", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		csvDir:     cfg.Paths.BaseDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nproject_dir = %q\nbase_dir = %q\nlog_dir = %q\n\n[csv]\nencoding = %q\ndelimiter = %q\nquote = %q\n\n[logging]\nformat = %q\nlevel = %q\n",
		cfg.Paths.ProjectDir,
		cfg.Paths.BaseDir,
		cfg.Paths.LogDir,
		cfg.CSV.Encoding,
		cfg.CSV.Delimiter,
		cfg.CSV.Quote,
		cfg.Logging.Format,
		cfg.Logging.Level,
	)
	testsupport.WriteFile(t, path, content)
}

func writeDescription(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "import.toml")
	testsupport.WriteFile(t, path, content)
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

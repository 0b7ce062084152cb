package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustWriteFile writes content to path, creating parent directories as
// needed, and fails the test on any error.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %q: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file %q: %v", path, err)
	}
}

// MustWriteCSV writes the given lines as a spreadsheet into a fresh
// temp directory and returns the file path. The first line is expected
// to be the header row.
func MustWriteCSV(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bugs.csv")
	MustWriteFile(t, path, strings.Join(lines, "\n")+"\n")
	return path
}

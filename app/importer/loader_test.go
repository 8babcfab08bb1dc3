package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shows.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write import file: %v", err)
	}
	return path
}

func TestLoadParsesEntries(t *testing.T) {
	path := writeImportFile(t, `shows:
  - id: 1399
    name: Game of Thrones
  - id: 94997
`)

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 1399 || entries[0].Name != "Game of Thrones" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].ID != 94997 || entries[1].Name != "" {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty list", "shows: []\n"},
		{"missing key", "other: value\n"},
		{"invalid id", "shows:\n  - id: 0\n    name: Broken\n"},
		{"negative id", "shows:\n  - id: -5\n"},
		{"malformed yaml", "shows: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImportFile(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadErrorOnMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunCreatesTimestampedCopy(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tracker.db")
	if err := os.WriteFile(dbPath, []byte("db-contents"), 0o644); err != nil {
		t.Fatalf("Failed to write database file: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	service := NewService(dbPath, backupDir)
	service.SetNowFunc(func() time.Time {
		return time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC)
	})

	path, err := service.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := filepath.Join(backupDir, "tv-tracker-20240315-030000.db")
	if path != want {
		t.Errorf("Expected backup at %s, got %s", want, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	if string(data) != "db-contents" {
		t.Errorf("Backup contents differ: %q", data)
	}
}

func TestRunPrunesOldBackups(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tracker.db")
	if err := os.WriteFile(dbPath, []byte("db"), 0o644); err != nil {
		t.Fatalf("Failed to write database file: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	service := NewService(dbPath, backupDir)

	current := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	service.SetNowFunc(func() time.Time { return current })

	for i := 0; i < 8; i++ {
		if _, err := service.Run(); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
		current = current.Add(24 * time.Hour)
	}

	matches, err := filepath.Glob(filepath.Join(backupDir, "tv-tracker-*.db"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != keepBackups {
		t.Fatalf("Expected %d backups after pruning, got %d", keepBackups, len(matches))
	}

	// The oldest copies are the ones removed
	oldest := filepath.Join(backupDir, "tv-tracker-20240101-030000.db")
	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Errorf("Expected oldest backup to be pruned, stat err: %v", err)
	}
	newest := filepath.Join(backupDir, "tv-tracker-20240108-030000.db")
	if _, err := os.Stat(newest); err != nil {
		t.Errorf("Expected newest backup to survive: %v", err)
	}
}

func TestRunErrorOnMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	service := NewService(filepath.Join(dir, "absent.db"), filepath.Join(dir, "backups"))
	if _, err := service.Run(); err == nil {
		t.Error("Expected error when database file is missing")
	}
}

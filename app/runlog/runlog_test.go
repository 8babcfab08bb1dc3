package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPrintfAppendsTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_log.txt")
	logger := New(path)
	logger.SetNowFunc(func() time.Time {
		return time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	})

	logger.Printf("daily digest check started for %s", "2024-03-15")
	logger.Printf("daily digest for %s: %d update(s), delivered", "2024-03-15", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read run log: %v", err)
	}

	want := "[2024-03-15 08:00:00] daily digest check started for 2024-03-15\n" +
		"[2024-03-15 08:00:00] daily digest for 2024-03-15: 3 update(s), delivered\n"
	if string(data) != want {
		t.Errorf("Unexpected run log contents:\n%s", data)
	}
}

func TestPrintfNoOpWithEmptyPath(t *testing.T) {
	logger := New("")
	// Must not panic or create anything
	logger.Printf("ignored")
}

func TestPrintfIgnoresWriteFailure(t *testing.T) {
	// Directory path cannot be opened as a file; the write is dropped
	logger := New(t.TempDir())
	logger.Printf("ignored")
}

// Package backup copies the SQLite database file into a backup
// directory and prunes old copies. Scheduled weekly in serve mode.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const keepBackups = 5

type Service struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewService(dbPath, dir string) *Service {
	return &Service{dbPath: dbPath, dir: dir, now: time.Now}
}

// SetNowFunc overrides the timestamp source, used by tests
func (s *Service) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		s.now = time.Now
		return
	}
	s.now = fn
}

// Run creates a timestamped copy of the database file and prunes the
// backup directory down to the most recent copies.
func (s *Service) Run() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	src, err := os.Open(s.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("tv-tracker-%s.db", s.now().Format("20060102-150405"))
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to copy database: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}

	if err := s.prune(); err != nil {
		return dstPath, fmt.Errorf("backup created but pruning failed: %w", err)
	}

	return dstPath, nil
}

func (s *Service) prune() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "tv-tracker-*.db"))
	if err != nil {
		return err
	}
	if len(matches) <= keepBackups {
		return nil
	}

	// Timestamped names sort chronologically
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-keepBackups] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

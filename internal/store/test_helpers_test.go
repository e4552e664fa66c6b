package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore opens a fresh journal in a temp directory with a fixed clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path, WithClock(func() time.Time { return testTime }))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

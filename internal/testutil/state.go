package testutil

import (
	"path/filepath"
	"testing"

	"taskpad/internal/storage"
)

// OpenStore opens a state store in a temp dir, closed when t finishes.
func OpenStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

package testutil

import (
	"testing"

	"github.com/htran/lms-console/internal/store"
)

// NewTestStore opens a migrated in-memory archive that is torn down
// with the test. Each call gets its own database, so tests touching
// the archive cannot see each other's rows.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

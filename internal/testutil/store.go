package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Veraticus/capture/internal/storage"
)

// SetupTestStore returns a migrated in-memory store closed at test cleanup.
func SetupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(storage.MemoryPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close test store: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test store: %v", err)
	}
	return store
}

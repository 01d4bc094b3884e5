// Package testutil provides test utilities for folio: an isolated, migrated
// local store seeded with preferences and journal entries.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/folio/internal/service"
	"github.com/Veraticus/folio/internal/storage"
)

// Preferences seeds preference values by namespace, then key.
type Preferences map[string]map[string]string

// TestDB is an in-memory store scoped to one test.
type TestDB struct {
	Store *storage.SQLiteStorage
	t     *testing.T
}

// SetupTestDB creates a migrated in-memory store seeded with prefs. The
// store is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.Preferences{
//		"stocks.columns": {"gain": "false"},
//	})
func SetupTestDB(t *testing.T, prefs Preferences) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Preferences: prefs})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Preferences    Preferences
	Runs           []service.BatchRun
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for namespace, values := range opts.Preferences {
		for key, value := range values {
			if err := store.Set(ctx, namespace, key, value); err != nil {
				t.Fatalf("failed to seed preference %s/%s: %v", namespace, key, err)
			}
		}
	}

	for i := range opts.Runs {
		if err := store.RecordBatchRun(ctx, &opts.Runs[i]); err != nil {
			t.Fatalf("failed to seed batch run %d: %v", i, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{Store: store, t: t}
}

// MustGet returns a stored preference or fails the test.
func (db *TestDB) MustGet(namespace, key string) string {
	db.t.Helper()
	value, ok, err := db.Store.Get(context.Background(), namespace, key)
	if err != nil {
		db.t.Fatalf("failed to read preference %s/%s: %v", namespace, key, err)
	}
	if !ok {
		db.t.Fatalf("preference %s/%s not set", namespace, key)
	}
	return value
}

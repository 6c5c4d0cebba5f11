// Package testutil provides test helpers shared across packcal packages.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/service"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/Veraticus/packcal/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup func(context.Context, service.Storage) error
	Override    *model.Dataset
	Anchor      *stateday.Anchor
	Purchases   []model.PurchaseRecord
	Now         time.Time
}

// SetupTestDB creates a new migrated in-memory test database.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.MustRecord("gems", time.Now())
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database seeded from opts.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{Storage: store, t: t}

	for _, rec := range opts.Purchases {
		if err := store.RecordPurchase(ctx, rec); err != nil {
			t.Fatalf("failed to seed purchase %+v: %v", rec, err)
		}
	}
	if opts.Override != nil {
		if err := store.SaveOverride(ctx, opts.Override); err != nil {
			t.Fatalf("failed to seed override: %v", err)
		}
	}
	if opts.Anchor != nil {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		if err := store.SaveAnchor(ctx, *opts.Anchor, now); err != nil {
			t.Fatalf("failed to seed anchor: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustRecord records a purchase of packID at ts or fails the test.
func (db *TestDB) MustRecord(packID string, ts time.Time) {
	db.t.Helper()
	if err := db.Storage.RecordPurchase(context.Background(), model.NewPurchaseRecord(packID, ts)); err != nil {
		db.t.Fatalf("failed to record purchase: %v", err)
	}
}

// MustPurchases returns the purchase log or fails the test.
func (db *TestDB) MustPurchases() []model.PurchaseRecord {
	db.t.Helper()
	purchases, err := db.Storage.ListPurchases(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list purchases: %v", err)
	}
	return purchases
}

// WithTransaction executes the given function within a database transaction.
// The transaction is automatically rolled back after the function completes.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}

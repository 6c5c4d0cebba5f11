package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func purchaseAt(packID string, ts time.Time) model.PurchaseRecord {
	return model.NewPurchaseRecord(packID, ts)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "packcal.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", store.Path(), dbPath)
	}
}

func TestSQLiteStorage_Transaction(t *testing.T) {
	base := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		txFunc    func(context.Context, *SQLiteStorage) error
		name      string
		wantCount int
		wantErr   bool
	}{
		{
			name: "successful transaction",
			txFunc: func(ctx context.Context, s *SQLiteStorage) error {
				tx, err := s.BeginTx(ctx)
				if err != nil {
					return err
				}

				for i := 0; i < 3; i++ {
					if err := tx.RecordPurchase(ctx, purchaseAt("gems", base.Add(time.Duration(i)*time.Hour))); err != nil {
						_ = tx.Rollback()
						return err
					}
				}

				return tx.Commit()
			},
			wantCount: 3,
		},
		{
			name: "rollback on error",
			txFunc: func(ctx context.Context, s *SQLiteStorage) error {
				tx, err := s.BeginTx(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = tx.Rollback() }()

				if err := tx.RecordPurchase(ctx, purchaseAt("gems", base)); err != nil {
					return err
				}
				// Missing pack ID is rejected
				return tx.RecordPurchase(ctx, model.PurchaseRecord{TimestampMs: base.UnixMilli()})
			},
			wantCount: 0,
			wantErr:   true,
		},
		{
			name: "reads see uncommitted writes",
			txFunc: func(ctx context.Context, s *SQLiteStorage) error {
				tx, err := s.BeginTx(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = tx.Rollback() }()

				if err := tx.RecordPurchase(ctx, purchaseAt("gems", base)); err != nil {
					return err
				}
				count, err := tx.CountPurchases(ctx)
				if err != nil {
					return err
				}
				if count != 1 {
					t.Errorf("in-transaction count = %d, want 1", count)
				}
				return nil
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			err := tt.txFunc(ctx, store)
			if (err != nil) != tt.wantErr {
				t.Errorf("Transaction test error = %v, wantErr %v", err, tt.wantErr)
			}

			count, err := store.CountPurchases(ctx)
			if err != nil {
				t.Fatalf("Failed to count purchases: %v", err)
			}
			if count != tt.wantCount {
				t.Errorf("purchase count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestSQLiteStorage_Migrations(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	// Test initial migration
	store1, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err2 := store1.Migrate(ctx); err2 != nil {
		t.Fatalf("Initial migration failed: %v", err2)
	}
	if err2 := store1.RecordPurchase(ctx, purchaseAt("gems", time.Now())); err2 != nil {
		t.Fatalf("Failed to record purchase: %v", err2)
	}
	_ = store1.Close()

	// Test idempotency - running migrations again should not error
	store2, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store2.Close() }()

	if err := store2.Migrate(ctx); err != nil {
		t.Fatalf("Repeated migration failed: %v", err)
	}

	// Data survives reopening
	purchases, err := store2.ListPurchases(ctx)
	if err != nil {
		t.Fatalf("Failed to list purchases: %v", err)
	}
	if len(purchases) != 1 {
		t.Errorf("got %d purchases after reopen, want 1", len(purchases))
	}
}

func TestSQLiteStorage_ConcurrentAccess(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Test concurrent reads and writes
	done := make(chan bool)
	errors := make(chan error, 10)
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Concurrent writers
	for i := 0; i < 5; i++ {
		go func(id int) {
			if err := store.RecordPurchase(ctx, purchaseAt("gems", base.Add(time.Duration(id)*time.Minute))); err != nil {
				errors <- err
			}
			done <- true
		}(i)
	}

	// Concurrent readers
	for i := 0; i < 5; i++ {
		go func() {
			if _, err := store.ListPurchases(ctx); err != nil {
				errors <- err
			}
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	close(errors)
	for err := range errors {
		t.Errorf("Concurrent access error: %v", err)
	}

	count, err := store.CountPurchases(ctx)
	if err != nil {
		t.Fatalf("Failed to count purchases: %v", err)
	}
	if count != 5 {
		t.Errorf("purchase count = %d, want 5", count)
	}
}

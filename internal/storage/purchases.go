package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/google/uuid"
)

// RecordPurchase appends a purchase to the log.
func (s *SQLiteStorage) RecordPurchase(ctx context.Context, rec model.PurchaseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePurchase(rec); err != nil {
		return err
	}
	return s.recordPurchaseTx(ctx, s.db, rec)
}

func (s *SQLiteStorage) recordPurchaseTx(ctx context.Context, q queryable, rec model.PurchaseRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO purchases (id, pack_id, ts_ms)
		VALUES (?, ?, ?)
	`, uuid.NewString(), rec.PackID, rec.TimestampMs)
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}

// ListPurchases returns the whole log in timestamp order.
func (s *SQLiteStorage) ListPurchases(ctx context.Context) ([]model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listPurchasesTx(ctx, s.db)
}

func (s *SQLiteStorage) listPurchasesTx(ctx context.Context, q queryable) ([]model.PurchaseRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT pack_id, ts_ms
		FROM purchases
		ORDER BY ts_ms, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	purchases := []model.PurchaseRecord{}
	for rows.Next() {
		var rec model.PurchaseRecord
		if err := rows.Scan(&rec.PackID, &rec.TimestampMs); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, rec)
	}

	return purchases, rows.Err()
}

// CountPurchases returns the number of logged purchases.
func (s *SQLiteStorage) CountPurchases(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.countPurchasesTx(ctx, s.db)
}

func (s *SQLiteStorage) countPurchasesTx(ctx context.Context, q queryable) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

// ClearPurchases empties the log.
func (s *SQLiteStorage) ClearPurchases(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.clearPurchasesTx(ctx, s.db)
}

func (s *SQLiteStorage) clearPurchasesTx(ctx context.Context, q queryable) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM purchases`); err != nil {
		return fmt.Errorf("failed to clear purchases: %w", err)
	}
	return nil
}

// maxSafeTimestamp bounds ts to integers a float64 represents exactly.
const maxSafeTimestamp = 1<<53 - 1

// DecodePurchaseLog parses a JSON purchase log of the form
// [{"packId": "...", "ts": 1700000000000}]. Entries without a string packId
// or an integral millisecond ts within ±(2^53-1) are skipped and counted.
func DecodePurchaseLog(raw []byte) ([]model.PurchaseRecord, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, fmt.Errorf("purchase log must be a JSON array: %w", err)
	}

	records := make([]model.PurchaseRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		var entry struct {
			PackID *string  `json:"packId"`
			TS     *float64 `json:"ts"`
		}
		if err := json.Unmarshal(item, &entry); err != nil ||
			entry.PackID == nil || !validTimestamp(entry.TS) {
			skipped++
			continue
		}
		records = append(records, model.PurchaseRecord{PackID: *entry.PackID, TimestampMs: int64(*entry.TS)})
	}

	return records, skipped, nil
}

func validTimestamp(ts *float64) bool {
	if ts == nil {
		return false
	}
	return *ts == math.Trunc(*ts) && math.Abs(*ts) <= maxSafeTimestamp
}

// EncodePurchaseLog renders records in the format DecodePurchaseLog reads.
func EncodePurchaseLog(records []model.PurchaseRecord) ([]byte, error) {
	if records == nil {
		records = []model.PurchaseRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchase log: %w", err)
	}
	return append(data, '\n'), nil
}

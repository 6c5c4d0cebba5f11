package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/packcal/internal/dataset"
	"github.com/Veraticus/packcal/internal/model"
)

// OverrideKey is the row holding the edited dataset overlay.
const OverrideKey = "dataset_override"

// GetOverride returns the stored override dataset, or nil when none is stored.
// A stored blob that is not valid JSON is treated as absent.
func (s *SQLiteStorage) GetOverride(ctx context.Context) (*model.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM overrides WHERE key = ?
	`, OverrideKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get override: %w", err)
	}

	if !json.Valid([]byte(body)) {
		slog.Warn("Ignoring malformed dataset override", "key", OverrideKey, "bytes", len(body))
		return nil, nil
	}

	ds, advisories := dataset.Normalize([]byte(body))
	for _, adv := range advisories {
		slog.Warn("Dataset override advisory", "advisory", adv)
	}
	return ds, nil
}

// SaveOverride replaces the stored override.
func (s *SQLiteStorage) SaveOverride(ctx context.Context, ds *model.Dataset) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDataset(ds); err != nil {
		return err
	}

	body, err := dataset.Encode(ds)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO overrides (key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, OverrideKey, string(body))
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// ClearOverride deletes the stored override. Clearing an absent override is not an error.
func (s *SQLiteStorage) ClearOverride(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM overrides WHERE key = ?`, OverrideKey); err != nil {
		return fmt.Errorf("failed to clear override: %w", err)
	}
	return nil
}


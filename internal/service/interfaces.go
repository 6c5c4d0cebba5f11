// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/stateday"
)

// PurchaseLog is the append-only record of pack purchases.
type PurchaseLog interface {
	RecordPurchase(ctx context.Context, rec model.PurchaseRecord) error
	ListPurchases(ctx context.Context) ([]model.PurchaseRecord, error)
	CountPurchases(ctx context.Context) (int, error)
	ClearPurchases(ctx context.Context) error
}

// OverrideStore persists the locally edited dataset overlay.
type OverrideStore interface {
	// GetOverride returns nil when no usable override is stored.
	GetOverride(ctx context.Context) (*model.Dataset, error)
	SaveOverride(ctx context.Context, ds *model.Dataset) error
	ClearOverride(ctx context.Context) error
}

// SettingsStore persists user settings such as the state-day anchor.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SaveSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error

	// GetAnchor returns the stored anchor as of now; false when none is stored.
	GetAnchor(ctx context.Context, now time.Time) (stateday.Anchor, bool, error)
	SaveAnchor(ctx context.Context, anchor stateday.Anchor, now time.Time) error
	ClearAnchor(ctx context.Context) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	PurchaseLog
	OverrideStore
	SettingsStore

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction groups purchase log writes so they commit together.
type Transaction interface {
	PurchaseLog
	Commit() error
	Rollback() error
}

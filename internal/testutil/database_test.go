package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/service"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDBWithOptions_Seeds(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	anchor := stateday.TodayIs(3)

	db := SetupTestDBWithOptions(t, TestDBOptions{
		Purchases: []model.PurchaseRecord{model.NewPurchaseRecord("gems", now)},
		Override:  &model.Dataset{PackDefs: []model.PackDefinition{{ID: "gems"}}},
		Anchor:    &anchor,
		Now:       now,
	})
	ctx := context.Background()

	assert.Len(t, db.MustPurchases(), 1)

	ov, err := db.Storage.GetOverride(ctx)
	require.NoError(t, err)
	require.NotNil(t, ov)
	assert.Equal(t, "gems", ov.PackDefs[0].ID)

	got, ok, err := db.Storage.GetAnchor(ctx, now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, anchor, got)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := SetupTestDB(t)

	err := db.WithTransaction(func(tx service.Transaction) error {
		return tx.RecordPurchase(context.Background(), model.NewPurchaseRecord("gems", time.Now()))
	})
	require.NoError(t, err)
	assert.Empty(t, db.MustPurchases())

	db.MustRecord("gems", time.Now())
	assert.Len(t, db.MustPurchases(), 1)
}

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/stateday"
)

func TestSQLiteStorage_Settings(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetSetting(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetSetting(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SaveSetting(ctx, "category", "Shop"); err != nil {
		t.Fatalf("SaveSetting() error = %v", err)
	}
	if err := store.SaveSetting(ctx, "category", "Event"); err != nil {
		t.Fatalf("SaveSetting() error = %v", err)
	}
	value, err := store.GetSetting(ctx, "category")
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if value != "Event" {
		t.Errorf("GetSetting() = %q, want Event", value)
	}

	if err := store.DeleteSetting(ctx, "category"); err != nil {
		t.Fatalf("DeleteSetting() error = %v", err)
	}
	if _, err := store.GetSetting(ctx, "category"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetSetting() after delete error = %v, want ErrNotFound", err)
	}

	if err := store.SaveSetting(ctx, " ", "x"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("SaveSetting(blank key) error = %v, want ErrEmptyString", err)
	}
}

func TestSQLiteStorage_Anchor(t *testing.T) {
	setOn := time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)
	later := time.Date(2024, time.January, 13, 1, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		anchor     stateday.Anchor
		readAt     time.Time
		wantDay    int
		wantStored bool
	}{
		{
			name:       "start date",
			anchor:     stateday.StartDate(start),
			readAt:     later,
			wantStored: true,
			wantDay:    13,
		},
		{
			name:       "today is, read same day",
			anchor:     stateday.TodayIs(5),
			readAt:     setOn,
			wantStored: true,
			wantDay:    5,
		},
		{
			name:       "today is keeps counting",
			anchor:     stateday.TodayIs(5),
			readAt:     later,
			wantStored: true,
			wantDay:    8,
		},
		{
			name:       "unset anchor is stored",
			anchor:     stateday.Anchor{},
			readAt:     later,
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			// Start from a different stored anchor so saving must replace it
			if err := store.SaveAnchor(ctx, stateday.TodayIs(99), setOn); err != nil {
				t.Fatalf("SaveAnchor() error = %v", err)
			}
			if err := store.SaveAnchor(ctx, tt.anchor, setOn); err != nil {
				t.Fatalf("SaveAnchor() error = %v", err)
			}

			got, ok, err := store.GetAnchor(ctx, tt.readAt)
			if err != nil {
				t.Fatalf("GetAnchor() error = %v", err)
			}
			if ok != tt.wantStored {
				t.Fatalf("GetAnchor() stored = %v, want %v", ok, tt.wantStored)
			}
			if !ok {
				return
			}
			if got.Mode() != tt.anchor.Mode() {
				t.Errorf("mode = %v, want %v", got.Mode(), tt.anchor.Mode())
			}
			if !tt.anchor.IsSet() {
				if sd, defined := stateday.Resolve(tt.readAt, got, tt.readAt); defined {
					t.Errorf("state day = %d, want undefined", sd)
				}
				return
			}

			sd, defined := stateday.Resolve(tt.readAt, got, tt.readAt)
			if !defined || sd != tt.wantDay {
				t.Errorf("state day at read time = %d (defined %v), want %d", sd, defined, tt.wantDay)
			}
		})
	}
}

func TestSQLiteStorage_AnchorCorrupt(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, raw := range []string{"nope", `{"mode":"weird"}`, `{"mode":"start_date","startDate":"01/02/2024"}`} {
		if err := store.SaveSetting(ctx, AnchorKey, raw); err != nil {
			t.Fatalf("SaveSetting() error = %v", err)
		}
		if _, _, err := store.GetAnchor(ctx, time.Now()); !errors.Is(err, ErrInvalidAnchor) {
			t.Errorf("GetAnchor(%q) error = %v, want ErrInvalidAnchor", raw, err)
		}
	}

	if err := store.ClearAnchor(ctx); err != nil {
		t.Fatalf("ClearAnchor() error = %v", err)
	}
	if _, ok, err := store.GetAnchor(ctx, time.Now()); ok || err != nil {
		t.Errorf("GetAnchor() after clear = %v, %v", ok, err)
	}
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/stateday"
)

// AnchorKey is the settings row holding the state-day anchor.
const AnchorKey = "anchor"

const (
	anchorModeNone      = "none"
	anchorModeStartDate = "start_date"
	anchorModeTodayIs   = "today_is"
)

// storedAnchor is the persisted form of a stateday.Anchor. A relative anchor
// remembers the UTC date it was set on so it keeps counting on later days.
type storedAnchor struct {
	Mode      string `json:"mode"`
	StartDate string `json:"startDate,omitempty"`
	SetOn     string `json:"setOn,omitempty"`
	Day       int    `json:"day,omitempty"`
}

// GetSetting returns the value stored under key, or common.ErrNotFound.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// SaveSetting stores value under key.
func (s *SQLiteStorage) SaveSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) DeleteSetting(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// GetAnchor loads the stored anchor as seen from now. An explicitly stored
// unset anchor is reported as stored.
func (s *SQLiteStorage) GetAnchor(ctx context.Context, now time.Time) (stateday.Anchor, bool, error) {
	raw, err := s.GetSetting(ctx, AnchorKey)
	if errors.Is(err, common.ErrNotFound) {
		return stateday.Anchor{}, false, nil
	}
	if err != nil {
		return stateday.Anchor{}, false, err
	}

	var stored storedAnchor
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return stateday.Anchor{}, false, fmt.Errorf("%w: %v", ErrInvalidAnchor, err)
	}

	switch stored.Mode {
	case anchorModeNone:
		return stateday.Anchor{}, true, nil

	case anchorModeStartDate:
		start, err := calendar.ParseDate(stored.StartDate)
		if err != nil {
			return stateday.Anchor{}, false, fmt.Errorf("%w: %v", ErrInvalidAnchor, err)
		}
		return stateday.StartDate(start), true, nil

	case anchorModeTodayIs:
		setOn, err := calendar.ParseDate(stored.SetOn)
		if err != nil {
			return stateday.Anchor{}, false, fmt.Errorf("%w: %v", ErrInvalidAnchor, err)
		}
		elapsed := calendar.DayNumber(now) - calendar.DayNumber(setOn)
		anchor := stateday.TodayIs(stored.Day + int(elapsed))
		return anchor, anchor.IsSet(), nil

	default:
		return stateday.Anchor{}, false, fmt.Errorf("%w: unknown mode %q", ErrInvalidAnchor, stored.Mode)
	}
}

// SaveAnchor persists anchor, replacing whichever mode was stored before.
// An unset anchor is stored as such, so state days stay undefined until a new
// anchor is saved or the stored one is cleared.
func (s *SQLiteStorage) SaveAnchor(ctx context.Context, anchor stateday.Anchor, now time.Time) error {
	var stored storedAnchor
	switch anchor.Mode() {
	case stateday.ModeStartDate:
		start, _ := anchor.StartDateValue()
		stored = storedAnchor{Mode: anchorModeStartDate, StartDate: calendar.FormatDate(start)}
	case stateday.ModeTodayIs:
		day, _ := anchor.TodayIsValue()
		stored = storedAnchor{Mode: anchorModeTodayIs, Day: day, SetOn: calendar.FormatDate(now)}
	default:
		stored = storedAnchor{Mode: anchorModeNone}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode anchor: %w", err)
	}
	return s.SaveSetting(ctx, AnchorKey, string(data))
}

// ClearAnchor removes the stored anchor, so callers fall back to their default.
func (s *SQLiteStorage) ClearAnchor(ctx context.Context) error {
	return s.DeleteSetting(ctx, AnchorKey)
}

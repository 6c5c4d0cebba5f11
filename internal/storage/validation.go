// Package storage provides the data persistence layer for packcal.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/packcal/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidPurchase = errors.New("invalid purchase")
	ErrInvalidAnchor   = errors.New("invalid anchor")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePurchase validates a purchase record.
func validatePurchase(rec model.PurchaseRecord) error {
	if strings.TrimSpace(rec.PackID) == "" {
		return fmt.Errorf("%w: missing pack ID", ErrInvalidPurchase)
	}
	if rec.TimestampMs <= 0 {
		return fmt.Errorf("%w: timestamp must be positive, got %d", ErrInvalidPurchase, rec.TimestampMs)
	}
	return nil
}

// validateDataset ensures an override dataset is present.
func validateDataset(ds *model.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: dataset", ErrNilParameter)
	}
	return nil
}

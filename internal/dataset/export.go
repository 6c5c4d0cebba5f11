package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/packcal/internal/model"
)

// Encode renders ds as indented JSON in the same shape it is loaded from.
func Encode(ds *model.Dataset) ([]byte, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// Summary counts what a merged dataset exposes for editing.
type Summary struct {
	Packs       int
	Rules       int
	HasOverride bool
}

// Summarize counts packs and first-range rules of merged.
func Summarize(merged *model.Dataset, hasOverride bool) Summary {
	s := Summary{HasOverride: hasOverride}
	if merged == nil {
		return s
	}
	s.Packs = len(merged.PackDefs)
	if len(merged.StateRanges) > 0 {
		s.Rules = len(merged.StateRanges[0].Rules)
	}
	return s
}

// String renders the summary like "Packs: 3 | Rules: 2 | Override: NO".
func (s Summary) String() string {
	override := "NO"
	if s.HasOverride {
		override = "YES"
	}
	return fmt.Sprintf("Packs: %d   |   Rules: %d   |   Override: %s", s.Packs, s.Rules, override)
}

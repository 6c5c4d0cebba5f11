package dataset

import (
	"slices"
	"strings"

	"github.com/Veraticus/packcal/internal/model"
)

// Merge overlays override on base and returns a new dataset; neither input is modified.
// The result always carries ApplyDefaults' guarantees, even when override is nil.
//
// Pack definitions are unioned by ID with the override winning, then sorted by
// ID. Only the first state range's rules are overridable: they are unioned with
// the override's first range the same way. Other ranges pass through from base.
func Merge(base, override *model.Dataset) *model.Dataset {
	out := ApplyDefaults(base)
	if override == nil {
		return out
	}

	out.PackDefs = unionByID(out.PackDefs, override.PackDefs, func(p model.PackDefinition) string { return p.ID }, clonePack)

	var overrideRules []model.ScheduleRule
	if len(override.StateRanges) > 0 {
		overrideRules = override.StateRanges[0].Rules
	}
	first := &out.StateRanges[0]
	first.Rules = unionByID(first.Rules, overrideRules, func(r model.ScheduleRule) string { return r.ID }, cloneRule)

	return out
}

func unionByID[T any](base, override []T, id func(T) string, clone func(T) T) []T {
	byID := make(map[string]T, len(base)+len(override))
	for _, item := range base {
		byID[id(item)] = item
	}
	for _, item := range override {
		byID[id(item)] = clone(item)
	}

	out := make([]T, 0, len(byID))
	for _, item := range byID {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b T) int { return strings.Compare(id(a), id(b)) })
	return out
}

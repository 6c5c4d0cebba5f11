package schedule

import (
	"sort"

	"github.com/Veraticus/packcal/internal/model"
)

// AllCategories is the category filter value that keeps every rule.
const AllCategories = "all"

// PickRange returns the first range containing stateDay, falling back to the
// first range. It returns nil only for a dataset without ranges.
func PickRange(ds *model.Dataset, stateDay int) *model.StateRange {
	if ds == nil || len(ds.StateRanges) == 0 {
		return nil
	}
	for i := range ds.StateRanges {
		if ds.StateRanges[i].Contains(stateDay) {
			return &ds.StateRanges[i]
		}
	}
	return &ds.StateRanges[0]
}

// FilterCategory keeps the rules in category. An empty category or "all" keeps everything.
func FilterCategory(rules []model.ScheduleRule, category string) []model.ScheduleRule {
	if category == "" || category == AllCategories {
		return rules
	}
	out := make([]model.ScheduleRule, 0, len(rules))
	for _, r := range rules {
		if r.CategoryName() == category {
			out = append(out, r)
		}
	}
	return out
}

// Categories lists the distinct rule categories across all ranges, sorted.
func Categories(ds *model.Dataset) []string {
	if ds == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, sr := range ds.StateRanges {
		for _, r := range sr.Rules {
			seen[r.CategoryName()] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ResolvePacks returns the pack definitions a rule references, in rule order.
// References to unknown packs are dropped.
func ResolvePacks(ds *model.Dataset, rule model.ScheduleRule) []model.PackDefinition {
	if ds == nil {
		return nil
	}
	out := make([]model.PackDefinition, 0, len(rule.Packs))
	for _, id := range rule.Packs {
		if p, ok := ds.PackByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// TopCategories returns up to limit distinct categories of the activations,
// in first-seen order.
func TopCategories(acts []Activation, limit int) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, a := range acts {
		c := a.Rule.CategoryName()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out
}

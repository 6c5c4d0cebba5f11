package dataset

import (
	"slices"

	"github.com/Veraticus/packcal/internal/model"
)

// Clone returns a deep copy of ds.
func Clone(ds *model.Dataset) *model.Dataset {
	if ds == nil {
		return nil
	}
	out := *ds
	out.PackDefs = cloneSlice(ds.PackDefs, clonePack)
	out.StateRanges = cloneSlice(ds.StateRanges, cloneRange)
	return &out
}

func cloneSlice[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func clonePack(p model.PackDefinition) model.PackDefinition {
	if p.Price != nil {
		price := *p.Price
		p.Price = &price
	}
	if p.Reset != nil {
		reset := *p.Reset
		p.Reset = &reset
	}
	if p.Choose != nil {
		choose := *p.Choose
		choose.Pool = slices.Clone(p.Choose.Pool)
		p.Choose = &choose
	}
	p.Gives = slices.Clone(p.Gives)
	return p
}

func cloneRule(r model.ScheduleRule) model.ScheduleRule {
	if r.Repeat != nil {
		rep := *r.Repeat
		rep.On = slices.Clone(r.Repeat.On)
		r.Repeat = &rep
	}
	r.Packs = slices.Clone(r.Packs)
	return r
}

func cloneRange(sr model.StateRange) model.StateRange {
	sr.Rules = cloneSlice(sr.Rules, cloneRule)
	return sr
}

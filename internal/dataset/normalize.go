// Package dataset loads, normalizes, merges and edits pack datasets.
//
// Nothing in this package fails on malformed input: missing or broken fields
// degrade to defaults and are reported as advisory strings.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/Veraticus/packcal/internal/model"
)

type rawDataset struct {
	SchemaVersion json.RawMessage `json:"schemaVersion"`
	ResetUTC      json.RawMessage `json:"resetUtc"`
	PackDefs      json.RawMessage `json:"packDefs"`
	StateRanges   json.RawMessage `json:"stateRanges"`
}

// Empty returns a structurally valid dataset with no packs and one default range.
func Empty() *model.Dataset {
	return &model.Dataset{
		SchemaVersion: model.SchemaVersion,
		ResetUTC:      model.DefaultResetUTC,
		PackDefs:      []model.PackDefinition{},
		StateRanges:   []model.StateRange{model.DefaultStateRange()},
	}
}

// Normalize decodes raw dataset JSON, filling defaults. A field of the wrong
// type falls back to its default; only entries that are not JSON objects are
// dropped. It always returns a valid dataset; problems are returned as advisories.
func Normalize(raw []byte) (*model.Dataset, []string) {
	var advisories []string

	var rd rawDataset
	if err := json.Unmarshal(raw, &rd); err != nil {
		return Empty(), []string{fmt.Sprintf("dataset is not valid JSON: %v", err)}
	}

	ds := &model.Dataset{
		SchemaVersion: model.SchemaVersion,
		ResetUTC:      model.DefaultResetUTC,
	}

	var version int
	if decodeOptional(rd.SchemaVersion, &version) && version != 0 {
		ds.SchemaVersion = version
	}
	var resetUTC string
	if decodeOptional(rd.ResetUTC, &resetUTC) && resetUTC != "" {
		ds.ResetUTC = resetUTC
	}

	packs, adv := decodeArray(rd.PackDefs, "packDefs", decodePack)
	advisories = append(advisories, adv...)
	ds.PackDefs = packs

	ranges, adv := decodeArray(rd.StateRanges, "stateRanges", decodeRange)
	advisories = append(advisories, adv...)
	ds.StateRanges = ranges

	return ApplyDefaults(ds), advisories
}

// ApplyDefaults returns a copy of ds with the structural guarantees of a
// normalized dataset: default version fields, non-nil collections and at
// least one state range.
func ApplyDefaults(ds *model.Dataset) *model.Dataset {
	if ds == nil {
		return Empty()
	}
	out := Clone(ds)
	if out.SchemaVersion == 0 {
		out.SchemaVersion = model.SchemaVersion
	}
	if out.ResetUTC == "" {
		out.ResetUTC = model.DefaultResetUTC
	}
	if out.PackDefs == nil {
		out.PackDefs = []model.PackDefinition{}
	}
	if len(out.StateRanges) == 0 {
		out.StateRanges = []model.StateRange{model.DefaultStateRange()}
	}
	for i := range out.StateRanges {
		if out.StateRanges[i].Rules == nil {
			out.StateRanges[i].Rules = []model.ScheduleRule{}
		}
	}
	return out
}

// decodeOptional decodes a present, non-null field into dst.
func decodeOptional(raw json.RawMessage, dst any) bool {
	if isAbsent(raw) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func decodePack(raw json.RawMessage, path string) (model.PackDefinition, []string, bool) {
	var p model.PackDefinition
	_, advisories, ok := decodeFields(raw, &p, path)
	return p, advisories, ok
}

func decodeRule(raw json.RawMessage, path string) (model.ScheduleRule, []string, bool) {
	var r model.ScheduleRule
	fields, advisories, ok := decodeFields(raw, &r, path, "repeat")
	if !ok {
		return r, advisories, false
	}
	if rep, present := fields["repeat"]; present && !isAbsent(rep) {
		var spec model.RepeatSpec
		_, adv, ok := decodeFields(rep, &spec, path+".repeat")
		advisories = append(advisories, adv...)
		if ok {
			r.Repeat = &spec
		}
	}
	return r, advisories, true
}

func decodeRange(raw json.RawMessage, path string) (model.StateRange, []string, bool) {
	var sr model.StateRange
	fields, advisories, ok := decodeFields(raw, &sr, path, "rules")
	if !ok {
		return sr, advisories, false
	}
	rules, adv := decodeArray(fields["rules"], path+".rules", decodeRule)
	sr.Rules = rules
	return sr, append(advisories, adv...), true
}

// decodeArray decodes a JSON array element by element. A missing or non-array
// field yields an empty slice; elements decode rejects are skipped.
func decodeArray[T any](raw json.RawMessage, field string, decode func(json.RawMessage, string) (T, []string, bool)) ([]T, []string) {
	out := []T{}
	if isAbsent(raw) {
		return out, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out, []string{fmt.Sprintf("%s is not an array; treating it as empty", field)}
	}

	var advisories []string
	for i, item := range items {
		v, adv, ok := decode(item, fmt.Sprintf("%s[%d]", field, i))
		advisories = append(advisories, adv...)
		if ok {
			out = append(out, v)
		}
	}
	return out, advisories
}

// decodeFields decodes a JSON object into dst one field at a time, so a field
// of the wrong type keeps its default instead of discarding the object. Fields
// named in skip are left for the caller. It reports false when raw is not an
// object.
func decodeFields(raw json.RawMessage, dst any, path string, skip ...string) (map[string]json.RawMessage, []string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, []string{fmt.Sprintf("%s skipped: not an object", path)}, false
	}

	target := reflect.ValueOf(dst).Elem()
	var advisories []string
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if slices.Contains(skip, key) {
			continue
		}
		one, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil {
			continue
		}
		saved := target.Interface()
		if err := json.Unmarshal(one, dst); err != nil {
			// A failed decode may leave a pointer or slice half set.
			target.Set(reflect.ValueOf(saved))
			advisories = append(advisories, fmt.Sprintf("%s.%s ignored: %v", path, key, err))
		}
	}
	return fields, advisories, true
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

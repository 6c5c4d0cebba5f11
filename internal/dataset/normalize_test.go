package dataset

import (
	"strings"
	"testing"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "schemaVersion": 2,
  "resetUtc": "00:00",
  "packDefs": [
    {"id": "gems", "name": "Gem Pack", "price": 4.99, "buyLimit": 2,
     "reset": {"type": "weekly", "weekStarts": "Mon"},
     "gives": [{"item": "Gems", "qty": 500}, {"item": "Speedup", "qty": "1h"}]},
    {"id": "pick", "name": "Pick One", "givesMode": "choose",
     "choose": {"count": 1, "pool": [{"item": "Hero Shard", "qty": 10}]},
     "gives": []}
  ],
  "stateRanges": [
    {"id": "early", "label": "Early", "minStateDay": 1, "maxStateDay": 60,
     "rules": [{"id": "r1", "title": "Weekly Gems", "category": "Shop",
                "startDay": 1, "endDay": 60,
                "repeat": {"freq": "weekly", "on": ["Mon"]},
                "packs": ["gems", "pick"]}]}
  ]
}`

func TestNormalize_ValidDocument(t *testing.T) {
	ds, advisories := Normalize([]byte(sampleJSON))

	assert.Empty(t, advisories)
	assert.Equal(t, 2, ds.SchemaVersion)
	require.Len(t, ds.PackDefs, 2)

	gems := ds.PackDefs[0]
	assert.Equal(t, 2, gems.Limit())
	require.NotNil(t, gems.Price)
	assert.InDelta(t, 4.99, *gems.Price, 0.0001)
	assert.Equal(t, model.ResetWeekly, gems.ResetPolicy().Type)
	assert.Equal(t, model.Quantity("500"), gems.Gives[0].Qty)
	assert.Equal(t, model.Quantity("1h"), gems.Gives[1].Qty)

	assert.True(t, ds.PackDefs[1].IsChoose())
	assert.Equal(t, model.ResetDaily, ds.PackDefs[1].ResetPolicy().Type)

	require.Len(t, ds.StateRanges, 1)
	require.Len(t, ds.StateRanges[0].Rules, 1)
	rule := ds.StateRanges[0].Rules[0]
	require.NotNil(t, rule.Repeat)
	assert.Equal(t, []model.Weekday{model.Monday}, rule.Repeat.On)
}

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantAdvisories int
	}{
		{name: "empty object", raw: `{}`},
		{name: "null fields", raw: `{"packDefs": null, "stateRanges": null, "schemaVersion": null}`},
		{name: "non-array collections", raw: `{"packDefs": {"a": 1}, "stateRanges": "nope"}`, wantAdvisories: 2},
		{name: "wrong scalar types", raw: `{"schemaVersion": "two", "resetUtc": 5}`},
		{name: "not json", raw: `<html>`, wantAdvisories: 1},
		{name: "json array", raw: `[]`, wantAdvisories: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, advisories := Normalize([]byte(tt.raw))

			assert.Len(t, advisories, tt.wantAdvisories)
			assert.Equal(t, model.SchemaVersion, ds.SchemaVersion)
			assert.Equal(t, model.DefaultResetUTC, ds.ResetUTC)
			assert.NotNil(t, ds.PackDefs)
			assert.Empty(t, ds.PackDefs)
			require.Len(t, ds.StateRanges, 1)
			assert.Equal(t, model.DefaultStateRange(), ds.StateRanges[0])
		})
	}
}

func TestNormalize_DropsNonObjectEntries(t *testing.T) {
	raw := `{
	  "packDefs": [{"id": "ok", "name": "OK"}, {"id": 7, "name": "Seven"}, "junk", null],
	  "stateRanges": [
	    {"id": "a", "minStateDay": 1, "maxStateDay": 10},
	    {"id": "b", "minStateDay": "x", "maxStateDay": 30},
	    42,
	    {"id": "c", "minStateDay": 11, "maxStateDay": 20,
	     "rules": [{"id": "good", "startDay": 1, "endDay": 5}, {"id": "late", "startDay": "soon", "endDay": 9}, []]}
	  ]
	}`

	ds, advisories := Normalize([]byte(raw))

	require.Len(t, advisories, 7)
	for i, want := range []string{
		"packDefs[1].id ignored",
		"packDefs[2] skipped: not an object",
		"packDefs[3] skipped: not an object",
		"stateRanges[1].minStateDay ignored",
		"stateRanges[2] skipped: not an object",
		"stateRanges[3].rules[1].startDay ignored",
		"stateRanges[3].rules[2] skipped: not an object",
	} {
		assert.True(t, strings.HasPrefix(advisories[i], want), "advisory %d = %q, want prefix %q", i, advisories[i], want)
	}

	require.Len(t, ds.PackDefs, 2)
	assert.Equal(t, "ok", ds.PackDefs[0].ID)
	assert.Equal(t, "", ds.PackDefs[1].ID)
	assert.Equal(t, "Seven", ds.PackDefs[1].Name)

	require.Len(t, ds.StateRanges, 3)
	assert.Equal(t, "a", ds.StateRanges[0].ID)
	assert.NotNil(t, ds.StateRanges[0].Rules, "missing rules become an empty slice")
	assert.Empty(t, ds.StateRanges[0].Rules)
	assert.Equal(t, 0, ds.StateRanges[1].MinStateDay)
	assert.Equal(t, 30, ds.StateRanges[1].MaxStateDay)

	rules := ds.StateRanges[2].Rules
	require.Len(t, rules, 2)
	assert.Equal(t, "good", rules[0].ID)
	assert.Equal(t, "late", rules[1].ID)
	assert.Equal(t, 0, rules[1].StartDay)
	assert.Equal(t, 9, rules[1].EndDay)
}

func TestNormalize_BadFieldsFallBackToDefaults(t *testing.T) {
	raw := `{
	  "packDefs": [
	    {"id": "gems", "name": "Gem Pack", "buyLimit": "2", "price": "cheap",
	     "reset": "weekly", "gives": [{"item": "Gems", "qty": 500}]},
	    {"id": "coins", "name": "Coins", "gives": [{"item": "Coins", "qty": {"n": 1}}]}
	  ],
	  "stateRanges": [{"id": "all", "minStateDay": 1, "maxStateDay": 9999, "rules": [
	    {"id": "weekly", "startDay": 1, "endDay": 60,
	     "repeat": {"freq": "weekly", "on": "Mon"}, "packs": ["gems"]},
	    {"id": "monthly", "startDay": 1, "endDay": 60,
	     "repeat": {"freq": "monthly", "onDay": "15th"}, "packs": ["gems"]},
	    {"id": "norepeat", "startDay": 1, "endDay": 60, "repeat": "daily", "packs": "gems"}
	  ]}]
	}`

	ds, advisories := Normalize([]byte(raw))

	require.Len(t, ds.PackDefs, 2)
	gems := ds.PackDefs[0]
	assert.Equal(t, "Gem Pack", gems.Name)
	assert.Equal(t, 1, gems.Limit())
	assert.Nil(t, gems.Price)
	assert.Nil(t, gems.Reset)
	assert.Equal(t, model.ResetDaily, gems.ResetPolicy().Type)
	require.Len(t, gems.Gives, 1)

	assert.Equal(t, "coins", ds.PackDefs[1].ID)
	assert.Empty(t, ds.PackDefs[1].Gives)

	rules := ds.StateRanges[0].Rules
	require.Len(t, rules, 3)

	require.NotNil(t, rules[0].Repeat)
	assert.Equal(t, model.RepeatWeekly, rules[0].Repeat.Freq)
	assert.Empty(t, rules[0].Repeat.On)
	assert.Equal(t, []string{"gems"}, rules[0].Packs)

	require.NotNil(t, rules[1].Repeat)
	assert.Equal(t, model.RepeatMonthly, rules[1].Repeat.Freq)
	assert.Equal(t, 1, rules[1].Repeat.DayOfMonth())

	assert.Nil(t, rules[2].Repeat)
	assert.Empty(t, rules[2].Packs)

	for _, want := range []string{
		"packDefs[0].buyLimit ignored",
		"packDefs[0].price ignored",
		"packDefs[0].reset ignored",
		"packDefs[1].gives ignored",
		"stateRanges[0].rules[0].repeat.on ignored",
		"stateRanges[0].rules[1].repeat.onDay ignored",
		"stateRanges[0].rules[2].packs ignored",
		"stateRanges[0].rules[2].repeat skipped: not an object",
	} {
		assert.True(t, containsPrefix(advisories, want), "missing advisory %q in %v", want, advisories)
	}
	assert.Len(t, advisories, 8)
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func TestApplyDefaults_DoesNotMutate(t *testing.T) {
	in := &model.Dataset{StateRanges: []model.StateRange{{ID: "x"}}}
	out := ApplyDefaults(in)

	assert.Nil(t, in.StateRanges[0].Rules)
	assert.Equal(t, 0, in.SchemaVersion)
	assert.NotNil(t, out.StateRanges[0].Rules)
	assert.Equal(t, model.SchemaVersion, out.SchemaVersion)
	assert.Equal(t, Empty(), ApplyDefaults(nil))
}

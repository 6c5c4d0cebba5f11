package model

// Dataset defaults.
const (
	SchemaVersion    = 2
	DefaultResetUTC  = "00:00"
	DefaultRangeID   = "default"
	DefaultRangeName = "Default"
	DefaultMinDay    = 1
	DefaultMaxDay    = 9999
)

// Dataset is the full pack and schedule definition.
type Dataset struct {
	ResetUTC      string           `json:"resetUtc"`
	PackDefs      []PackDefinition `json:"packDefs"`
	StateRanges   []StateRange     `json:"stateRanges"`
	SchemaVersion int              `json:"schemaVersion"`
}

// DefaultStateRange returns the range synthesized when a dataset has none.
func DefaultStateRange() StateRange {
	return StateRange{
		ID:          DefaultRangeID,
		Label:       DefaultRangeName,
		MinStateDay: DefaultMinDay,
		MaxStateDay: DefaultMaxDay,
		Rules:       []ScheduleRule{},
	}
}

// PackByID looks up a pack definition.
func (d *Dataset) PackByID(id string) (PackDefinition, bool) {
	for _, p := range d.PackDefs {
		if p.ID == id {
			return p, true
		}
	}
	return PackDefinition{}, false
}

package model

// DefaultCategory is used for rules without a category.
const DefaultCategory = "Other"

// RepeatFreq is the recurrence of a schedule rule.
type RepeatFreq string

// Repeat frequencies.
const (
	RepeatDaily   RepeatFreq = "daily"
	RepeatWeekly  RepeatFreq = "weekly"
	RepeatMonthly RepeatFreq = "monthly"
)

// RepeatSpec narrows when a rule is active inside its state-day window.
//
// Weekly rules have two distinct meanings depending on On: a single weekday
// opens a rotating seven-day window starting on that weekday, while several
// weekdays activate the rule only on those days. An empty On keeps the rule
// active for the whole window.
type RepeatSpec struct {
	Freq  RepeatFreq `json:"freq"`
	On    []Weekday  `json:"on,omitempty"`
	OnDay int        `json:"onDay,omitempty"`
}

// DayOfMonth returns the monthly activation day, defaulting to 1.
func (r RepeatSpec) DayOfMonth() int {
	if r.OnDay == 0 {
		return 1
	}
	return r.OnDay
}

// ScheduleRule activates a set of packs over a range of state days.
type ScheduleRule struct {
	Repeat   *RepeatSpec `json:"repeat,omitempty"`
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Category string      `json:"category,omitempty"`
	Packs    []string    `json:"packs"`
	StartDay int         `json:"startDay"`
	EndDay   int         `json:"endDay"`
}

// CategoryName returns the rule category, defaulting to "Other".
func (r ScheduleRule) CategoryName() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}

// DisplayTitle returns the title, falling back to the ID.
func (r ScheduleRule) DisplayTitle() string {
	if r.Title == "" {
		return r.ID
	}
	return r.Title
}

// InWindow reports whether stateDay lies within [StartDay, EndDay].
func (r ScheduleRule) InWindow(stateDay int) bool {
	return stateDay >= r.StartDay && stateDay <= r.EndDay
}

// StateRange groups the rules that apply to a band of state days.
type StateRange struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Rules       []ScheduleRule `json:"rules"`
	MinStateDay int            `json:"minStateDay"`
	MaxStateDay int            `json:"maxStateDay"`
}

// Contains reports whether stateDay lies within the range bounds.
func (s StateRange) Contains(stateDay int) bool {
	return stateDay >= s.MinStateDay && stateDay <= s.MaxStateDay
}

// Package model defines the core data structures for the pack calendar.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ResetType names the cooldown window a pack's purchases accumulate in.
type ResetType string

// Reset types.
const (
	ResetDaily   ResetType = "daily"
	ResetWeekly  ResetType = "weekly"
	ResetMonthly ResetType = "monthly"
)

// GivesModeChoose marks a pack whose buyer picks items from a pool.
const GivesModeChoose = "choose"

// ResetPolicy determines the half-open window used for cooldown accounting.
type ResetPolicy struct {
	Type       ResetType `json:"type"`
	WeekStarts Weekday   `json:"weekStarts,omitempty"`
}

// WeekStart returns the configured week start, defaulting to Monday.
func (r ResetPolicy) WeekStart() Weekday {
	if r.WeekStarts == "" {
		return Monday
	}
	return r.WeekStarts
}

// Quantity is an item count. Datasets carry it as a number or a free-form string
// such as "1.5k", so it is kept verbatim.
type Quantity string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a number or string: %w", err)
	}
	*q = Quantity(n.String())
	return nil
}

// MarshalJSON writes numeric quantities as numbers and everything else as strings.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(q), 64); err == nil && json.Valid([]byte(q)) {
		return []byte(q), nil
	}
	return json.Marshal(string(q))
}

// ItemQty is a single reward line.
type ItemQty struct {
	Item string   `json:"item"`
	Qty  Quantity `json:"qty"`
}

// ChooseSpec describes a pick-count-from-pool reward.
type ChooseSpec struct {
	Pool  []ItemQty `json:"pool"`
	Count int       `json:"count"`
}

// PackDefinition is a purchasable pack.
type PackDefinition struct {
	Price       *float64     `json:"price,omitempty"`
	Reset       *ResetPolicy `json:"reset,omitempty"`
	Choose      *ChooseSpec  `json:"choose,omitempty"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"desc,omitempty"`
	Currency    string       `json:"currency,omitempty"`
	GivesMode   string       `json:"givesMode,omitempty"`
	Gives       []ItemQty    `json:"gives"`
	BuyLimit    int          `json:"buyLimit,omitempty"`
}

// Limit returns the purchase limit per reset window, defaulting to 1.
func (p PackDefinition) Limit() int {
	if p.BuyLimit < 1 {
		return 1
	}
	return p.BuyLimit
}

// ResetPolicy returns the pack's reset policy, defaulting to daily.
func (p PackDefinition) ResetPolicy() ResetPolicy {
	if p.Reset == nil || p.Reset.Type == "" {
		return ResetPolicy{Type: ResetDaily}
	}
	return *p.Reset
}

// IsChoose reports whether the pack offers a choose-from-pool reward.
func (p PackDefinition) IsChoose() bool {
	return p.GivesMode == GivesModeChoose && p.Choose != nil
}

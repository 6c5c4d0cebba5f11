package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/go-playground/validator/v10"
)

// DefaultCurrency is stamped on packs created through the editor.
const DefaultCurrency = "USD"

var validate = validator.New(validator.WithRequiredStructEnabled())

// PackInput is user-authored pack data before validation.
type PackInput struct {
	Price       *float64 `validate:"omitempty,gte=0"`
	ID          string   `validate:"required"`
	Name        string   `validate:"required"`
	Description string
	ResetType   string `validate:"required,oneof=daily weekly monthly"`
	GivesJSON   string `validate:"required"`
	ChooseJSON  string
	BuyLimit    int `validate:"gte=1"`
}

var packMessages = map[string]string{
	"ID":        "Pack ID + Name are required.",
	"Name":      "Pack ID + Name are required.",
	"ResetType": "Reset must be one of daily, weekly, monthly.",
	"GivesJSON": "Gives must be valid JSON array.",
	"BuyLimit":  "Buy limit must be at least 1.",
	"Price":     "Price must not be negative.",
}

// RuleInput is user-authored schedule rule data before validation.
type RuleInput struct {
	ID       string `validate:"required"`
	Title    string `validate:"required"`
	Category string
	Weekday  string `validate:"required"`
	PackIDs  string `validate:"required"`
	StartDay int
	EndDay   int `validate:"gtefield=StartDay"`
}

var ruleMessages = map[string]string{
	"ID":      "Rule ID + Title + Pack IDs are required.",
	"Title":   "Rule ID + Title + Pack IDs are required.",
	"PackIDs": "Rule ID + Title + Pack IDs are required.",
	"Weekday": "Weekday is required (Mon..Sun).",
	"EndDay":  "End day must not be before start day.",
}

// BuildPack validates in and converts it to a pack definition. Errors are
// *common.UserError values wrapping common.ErrInvalidInput.
func BuildPack(in PackInput) (model.PackDefinition, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := validate.Struct(in); err != nil {
		return model.PackDefinition{}, translate(err, packMessages)
	}

	var gives []model.ItemQty
	if err := json.Unmarshal([]byte(in.GivesJSON), &gives); err != nil {
		return model.PackDefinition{}, invalid("Gives must be valid JSON array.")
	}
	if gives == nil {
		gives = []model.ItemQty{}
	}

	pack := model.PackDefinition{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    DefaultCurrency,
		BuyLimit:    in.BuyLimit,
		Gives:       gives,
	}

	switch model.ResetType(in.ResetType) {
	case model.ResetWeekly:
		pack.Reset = &model.ResetPolicy{Type: model.ResetWeekly, WeekStarts: model.Monday}
	default:
		pack.Reset = &model.ResetPolicy{Type: model.ResetType(in.ResetType)}
	}

	if raw := strings.TrimSpace(in.ChooseJSON); raw != "" {
		choose, err := parseChoose(raw)
		if err != nil {
			return model.PackDefinition{}, err
		}
		pack.GivesMode = model.GivesModeChoose
		pack.Choose = choose
	}

	return pack, nil
}

func parseChoose(raw string) (*model.ChooseSpec, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		return nil, invalid("Choose must be valid JSON object.")
	}

	var count float64
	var pool []model.ItemQty
	countErr := json.Unmarshal(obj["count"], &count)
	poolErr := json.Unmarshal(obj["pool"], &pool)
	if countErr != nil || poolErr != nil || pool == nil {
		return nil, invalid("Choose must include { count:number, pool:array }")
	}

	return &model.ChooseSpec{Count: int(count), Pool: pool}, nil
}

// BuildRule validates in and converts it to a weekly schedule rule on a
// single weekday.
func BuildRule(in RuleInput) (model.ScheduleRule, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	packs := splitIDs(in.PackIDs)
	if len(packs) == 0 {
		in.PackIDs = ""
	}

	if err := validate.Struct(in); err != nil {
		return model.ScheduleRule{}, translate(err, ruleMessages)
	}

	wd, ok := model.ParseWeekday(in.Weekday)
	if !ok {
		return model.ScheduleRule{}, invalid(fmt.Sprintf("Unknown weekday %q (expected Mon..Sun).", in.Weekday))
	}

	category := in.Category
	if category == "" {
		category = model.DefaultCategory
	}

	return model.ScheduleRule{
		ID:       in.ID,
		Title:    in.Title,
		Category: category,
		StartDay: in.StartDay,
		EndDay:   in.EndDay,
		Repeat:   &model.RepeatSpec{Freq: model.RepeatWeekly, On: []model.Weekday{wd}},
		Packs:    packs,
	}, nil
}

// EditableOverride returns the dataset edits should be applied to: a copy of
// the stored override, or of the merged dataset when none is stored yet.
func EditableOverride(stored, merged *model.Dataset) *model.Dataset {
	if stored != nil {
		return ApplyDefaults(stored)
	}
	return ApplyDefaults(merged)
}

// WithPack returns a copy of ov with pack inserted or replacing the same ID.
func WithPack(ov *model.Dataset, pack model.PackDefinition) *model.Dataset {
	out := ApplyDefaults(ov)
	for i := range out.PackDefs {
		if out.PackDefs[i].ID == pack.ID {
			out.PackDefs[i] = clonePack(pack)
			return out
		}
	}
	out.PackDefs = append(out.PackDefs, clonePack(pack))
	return out
}

// WithRule returns a copy of ov with rule inserted into, or replacing the same
// ID in, the first state range.
func WithRule(ov *model.Dataset, rule model.ScheduleRule) *model.Dataset {
	out := ApplyDefaults(ov)
	first := &out.StateRanges[0]
	for i := range first.Rules {
		if first.Rules[i].ID == rule.ID {
			first.Rules[i] = cloneRule(rule)
			return out
		}
	}
	first.Rules = append(first.Rules, cloneRule(rule))
	return out
}

func splitIDs(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func invalid(msg string) error {
	return common.NewUserError(msg, common.ErrInvalidInput)
}

func translate(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()]; ok {
			return invalid(msg)
		}
		return invalid(fmt.Sprintf("%s failed %q validation.", fe.Field(), fe.Tag()))
	}
	return common.NewUserError("Invalid input.", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
}

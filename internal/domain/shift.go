package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ShiftKind string

const (
	ShiftNone          ShiftKind = "none"
	ShiftFullDay       ShiftKind = "full_day"
	ShiftMorningHalf   ShiftKind = "morning_half"
	ShiftAfternoonHalf ShiftKind = "afternoon_half"
	ShiftCustom        ShiftKind = "custom"
)

// Shift is the planned work descriptor of a schedule entry. Text is only
// meaningful for ShiftCustom and holds the descriptor exactly as submitted.
type Shift struct {
	Kind ShiftKind
	Text string
}

var (
	NoShift        = Shift{Kind: ShiftNone}
	FullDay        = Shift{Kind: ShiftFullDay}
	MorningHalf    = Shift{Kind: ShiftMorningHalf}
	AfternoonHalf  = Shift{Kind: ShiftAfternoonHalf}
	fullDayHours   = decimal.NewFromInt(8)
	halfShiftHours = decimal.NewFromInt(4)
)

// CustomShift wraps free text as a custom descriptor.
func CustomShift(text string) Shift {
	return Shift{Kind: ShiftCustom, Text: text}
}

// An empty cell is how plan rows have always meant a full day; no shift is
// written as "-".
var shiftAliases = map[string]ShiftKind{
	"":               ShiftFullDay,
	"none":           ShiftNone,
	"-":              ShiftNone,
	"full_day":       ShiftFullDay,
	"full":           ShiftFullDay,
	"종일":             ShiftFullDay,
	"8시간":            ShiftFullDay,
	"8h":             ShiftFullDay,
	"morning_half":   ShiftMorningHalf,
	"morning":        ShiftMorningHalf,
	"am":             ShiftMorningHalf,
	"오전":             ShiftMorningHalf,
	"afternoon_half": ShiftAfternoonHalf,
	"afternoon":      ShiftAfternoonHalf,
	"pm":             ShiftAfternoonHalf,
	"오후":             ShiftAfternoonHalf,
}

// ParseShift never fails: unrecognised descriptors become custom shifts with
// the original text preserved.
func ParseShift(descriptor string) Shift {
	trimmed := strings.TrimSpace(descriptor)
	if kind, ok := shiftAliases[strings.ToLower(trimmed)]; ok {
		return Shift{Kind: kind}
	}
	return CustomShift(trimmed)
}

// Descriptor is the value written to the shiftDescriptor column.
func (s Shift) Descriptor() string {
	switch s.Kind {
	case ShiftFullDay:
		return "종일"
	case ShiftMorningHalf:
		return "오전"
	case ShiftAfternoonHalf:
		return "오후"
	case ShiftCustom:
		return s.Text
	default:
		return "-"
	}
}

// PlanLabel is the abbreviated text shown in a plan column of the grid.
func (s Shift) PlanLabel() string {
	switch s.Kind {
	case ShiftFullDay:
		return "8H"
	case ShiftMorningHalf:
		return "오전"
	case ShiftAfternoonHalf:
		return "오후"
	case ShiftCustom:
		return "기타"
	default:
		return ""
	}
}

// DisplayText is used by listings, where custom descriptors appear verbatim.
func (s Shift) DisplayText() string {
	if s.Kind == ShiftCustom {
		return s.Text
	}
	return s.PlanLabel()
}

// PlannedHours is zero for none and custom shifts.
func (s Shift) PlannedHours() decimal.Decimal {
	switch s.Kind {
	case ShiftFullDay:
		return fullDayHours
	case ShiftMorningHalf, ShiftAfternoonHalf:
		return halfShiftHours
	default:
		return decimal.Zero
	}
}

func (s Shift) IsZero() bool { return s.Kind == "" || s.Kind == ShiftNone }

// HoursOption is the actual-hours choice offered when logging a day.
type HoursOption string

const (
	HoursFullDay HoursOption = "8시간"
	HoursHalfDay HoursOption = "4시간"
	HoursCustom  HoursOption = "직접입력"
)

var hoursOptionAliases = map[string]HoursOption{
	"8시간":    HoursFullDay,
	"8":      HoursFullDay,
	"full":   HoursFullDay,
	"4시간":    HoursHalfDay,
	"4":      HoursHalfDay,
	"half":   HoursHalfDay,
	"직접입력":   HoursCustom,
	"custom": HoursCustom,
}

// ParseHoursOption defaults to the full-day option for empty input.
func ParseHoursOption(s string) (HoursOption, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return HoursFullDay, true
	}
	opt, ok := hoursOptionAliases[s]
	return opt, ok
}

// Resolve returns the hours to record and whether the row should be saved.
// A custom entry of zero hours is a blank row and is not saved.
func (o HoursOption) Resolve(custom decimal.Decimal) (decimal.Decimal, bool) {
	switch o {
	case HoursHalfDay:
		return halfShiftHours, true
	case HoursCustom:
		if !custom.IsPositive() {
			return decimal.Zero, false
		}
		return custom, true
	default:
		return fullDayHours, true
	}
}

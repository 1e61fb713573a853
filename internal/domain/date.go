package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical stored date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"2006. 1. 2.",
	"2006. 1. 2",
}

var weekdayLabels = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the clock part and location of t.
func TruncateDate(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts the spellings that show up in hand-edited sheets, with or
// without a trailing clock part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, ok := parseDateLayouts(s); ok {
		return t, nil
	}
	if i := strings.IndexAny(s, " T"); i > 0 {
		if t, ok := parseDateLayouts(s[:i]); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseDateLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TruncateDate(t), true
		}
	}
	return time.Time{}, false
}

// SameDay compares calendar days ignoring clock and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekdayLabel returns the one-character Korean weekday.
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[t.Weekday()]
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type Period string

const (
	PeriodFirstHalf  Period = "first_half"
	PeriodSecondHalf Period = "second_half"
	PeriodMonth      Period = "month"
)

var periodAliases = map[string]Period{
	"first_half":  PeriodFirstHalf,
	"first":       PeriodFirstHalf,
	"1":           PeriodFirstHalf,
	"전반기":         PeriodFirstHalf,
	"second_half": PeriodSecondHalf,
	"second":      PeriodSecondHalf,
	"2":           PeriodSecondHalf,
	"후반기":         PeriodSecondHalf,
	"month":       PeriodMonth,
	"full":        PeriodMonth,
	"":            PeriodMonth,
	"월간":          PeriodMonth,
}

func ParsePeriod(s string) (Period, error) {
	if p, ok := periodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (want first_half, second_half or month)", s)
}

// Bounds returns the first and last day-of-month covered by the period.
func (p Period) Bounds(year int, month time.Month) (int, int) {
	last := DaysIn(year, month)
	switch p {
	case PeriodFirstHalf:
		return 1, 15
	case PeriodSecondHalf:
		return 16, last
	default:
		return 1, last
	}
}

// Days lists every day-of-month in the period.
func (p Period) Days(year int, month time.Month) []int {
	first, last := p.Bounds(year, month)
	days := make([]int, 0, last-first+1)
	for d := first; d <= last; d++ {
		days = append(days, d)
	}
	return days
}

func (p Period) Contains(year int, month time.Month, day int) bool {
	first, last := p.Bounds(year, month)
	return day >= first && day <= last
}

func (p Period) Label() string {
	switch p {
	case PeriodFirstHalf:
		return "전반기(1~15일)"
	case PeriodSecondHalf:
		return "후반기(16~말일)"
	default:
		return "월간"
	}
}

package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// monthValue is a --month flag in YYYY-MM form.
type monthValue struct {
	year  int
	month time.Month
}

var _ pflag.Value = (*monthValue)(nil)

func newMonthValue(now time.Time) *monthValue {
	return &monthValue{year: now.Year(), month: now.Month()}
}

func (m *monthValue) String() string {
	if m.year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

func (m *monthValue) Set(s string) error {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "-/.")
	if sep < 0 {
		return fmt.Errorf("month must look like 2025-03")
	}
	year, err := strconv.Atoi(s[:sep])
	if err != nil {
		return fmt.Errorf("month must look like 2025-03")
	}
	month, err := strconv.Atoi(strings.TrimSuffix(s[sep+1:], "월"))
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("month %q is out of range", s[sep+1:])
	}
	m.year, m.month = year, time.Month(month)
	return nil
}

func (m *monthValue) Type() string { return "YYYY-MM" }

type periodValue struct{ p domain.Period }

func (v *periodValue) String() string { return string(v.p) }

func (v *periodValue) Set(s string) error {
	p, err := domain.ParsePeriod(s)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v *periodValue) Type() string { return "period" }

// shiftValue accepts canonical names, Korean labels and free text; anything
// unrecognised becomes a custom shift.
type shiftValue struct{ s domain.Shift }

func (v *shiftValue) String() string {
	if v.s.Kind == "" {
		return ""
	}
	return v.s.Descriptor()
}

func (v *shiftValue) Set(s string) error {
	v.s = domain.ParseShift(s)
	return nil
}

func (v *shiftValue) Type() string { return "shift" }

type hoursValue struct{ o domain.HoursOption }

func (v *hoursValue) String() string { return string(v.o) }

func (v *hoursValue) Set(s string) error {
	o, ok := domain.ParseHoursOption(s)
	if !ok {
		return fmt.Errorf("unknown hours option %q (want %s, %s or %s)",
			s, domain.HoursFullDay, domain.HoursHalfDay, domain.HoursCustom)
	}
	v.o = o
	return nil
}

func (v *hoursValue) Type() string { return "hours" }

// daysValue parses day lists such as "3,5,10-12".
type daysValue struct{ days []int }

func (v *daysValue) String() string {
	parts := make([]string, len(v.days))
	for i, d := range v.days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func (v *daysValue) Set(s string) error {
	days, err := parseDays(s)
	if err != nil {
		return err
	}
	v.days = append(v.days, days...)
	return nil
}

func (v *daysValue) Type() string { return "days" }

func parseDays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad day %q", part)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil || last < first {
				return nil, fmt.Errorf("bad day range %q", part)
			}
		}
		for d := first; d <= last; d++ {
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days, nil
}

// dateValue is a single calendar day flag.
type dateValue struct{ t time.Time }

func (v *dateValue) String() string {
	if v.t.IsZero() {
		return ""
	}
	return domain.FormatDate(v.t)
}

func (v *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	v.t = t
	return nil
}

func (v *dateValue) Type() string { return "date" }

// scopeFlags are the month/island/post filters shared by listing and
// approval commands.
type scopeFlags struct {
	month  *monthValue
	island string
	post   string
}

func addScopeFlags(cmd *cobra.Command, a *App) *scopeFlags {
	f := &scopeFlags{month: newMonthValue(a.now())}
	cmd.Flags().Var(f.month, "month", "Month to work on (default current month)")
	cmd.Flags().StringVar(&f.island, "island", "", "Limit to one island")
	cmd.Flags().StringVar(&f.post, "post", "", "Limit to one post")
	return f
}

func (f *scopeFlags) scope() app.Scope {
	return app.Scope{Year: f.month.year, Month: f.month.month, Island: f.island, Post: f.post}
}

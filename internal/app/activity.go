package app

import (
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/shopspring/decimal"
)

// ActivityRow is one line of the monthly activity form.
type ActivityRow struct {
	Day         int
	Person      string
	Option      domain.HoursOption
	CustomHours decimal.Decimal
	Visitors    int
	Listeners   int
	Narrations  int
	Tags        []string
}

type ActivitySubmission struct {
	Island string
	Post   string
	Year   int
	Month  time.Month
	Rows   []ActivityRow
}

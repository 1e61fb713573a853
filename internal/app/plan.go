package app

import (
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
)

// Scope narrows a request to one month, optionally one island and post.
type Scope struct {
	Year   int
	Month  time.Month
	Island string
	Post   string
}

// PlanSubmission is one guide's plan for a set of days at a post. When Days
// is empty every day of Period is planned.
type PlanSubmission struct {
	Island string
	Post   string
	Person string
	Year   int
	Month  time.Month
	Days   []int
	Period domain.Period
	Shift  domain.Shift
	Note   string
	Status domain.PlanStatus
}

// SubstitutionRequest records that Substitute works Original's day.
type SubstitutionRequest struct {
	Island     string
	Post       string
	Date       time.Time
	Original   string
	Substitute string
	Shift      domain.Shift
	Note       string
}

type SubmitResult struct {
	BatchID  string
	Saved    int
	Replaced int
	Skipped  int
}

package app

import (
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/reconcile"
	"github.com/geopark-ops/guidelog/internal/report"
)

type ReportRequest struct {
	Year   int
	Month  time.Month
	Period domain.Period
	Island string
	Post   string
	Note   string
}

// MonthlyReport is the reconciled grid of one post. When a source table
// could not be read the grid is built without it and the matching
// Unavailable flag is set.
type MonthlyReport struct {
	Request         ReportRequest
	Days            []reconcile.Day
	Document        report.Document
	PlanUnavailable bool
	LogUnavailable  bool
	Warnings        []string
	DroppedOwners   int
	DroppedLogs     int
}

func (r *MonthlyReport) Degraded() bool {
	return r.PlanUnavailable || r.LogUnavailable
}

// Input is the renderer input this report was built from.
func (r *MonthlyReport) Input() report.Input {
	return report.Input{
		PostName:    r.Request.Post,
		Note:        r.Request.Note,
		Year:        r.Request.Year,
		Month:       r.Request.Month,
		PeriodLabel: r.Request.Period.Label(),
		Days:        r.Days,
	}
}

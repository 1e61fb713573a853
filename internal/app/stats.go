package app

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatsRequest struct {
	Year   int
	Month  time.Month
	Island string
	// Route selects the ferry route whose disruption days are split out.
	Route string
}

// Totals sums activity counters over a set of log rows.
type Totals struct {
	Entries    int
	Hours      decimal.Decimal
	Visitors   int
	Listeners  int
	Narrations int
}

func (t *Totals) Add(hours decimal.Decimal, visitors, listeners, narrations int) {
	t.Entries++
	t.Hours = t.Hours.Add(hours)
	t.Visitors += visitors
	t.Listeners += listeners
	t.Narrations += narrations
}

type IslandStats struct {
	Island string
	Totals
}

type PostStats struct {
	Island string
	Post   string
	Totals
}

type StatsResponse struct {
	Request        StatsRequest
	Islands        []IslandStats
	Posts          []PostStats
	Overall        Totals
	DisruptionDays []time.Time
	// Disrupted covers only the rows logged on disruption days.
	Disrupted Totals
	Skipped   int
	Warnings  []string
}

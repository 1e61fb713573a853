package repository

import "github.com/geopark-ops/guidelog/internal/sheet"

// Column order is the on-disk contract: rows are written positionally.
var (
	ScheduleSchema = sheet.Schema{
		Name: "schedule",
		Columns: []string{
			"year", "month", "date", "island", "post", "person",
			"shiftDescriptor", "note", "status", "originalPerson", "updatedAt",
		},
		Key:          []string{"date", "person", "post"},
		DateColumn:   "date",
		IslandColumn: "island",
		PostColumn:   "post",
	}

	ActivitySchema = sheet.Schema{
		Name: "activityLog",
		Columns: []string{
			"date", "island", "post", "person", "hours", "visitors",
			"listeners", "narrationCount", "note", "timestamp", "status",
		},
		Key:          []string{"date", "person", "post"},
		DateColumn:   "date",
		IslandColumn: "island",
		PostColumn:   "post",
	}

	RosterSchema = sheet.Schema{
		Name:         "roster",
		Columns:      []string{"name", "island", "role"},
		Key:          []string{"name"},
		IslandColumn: "island",
	}
)

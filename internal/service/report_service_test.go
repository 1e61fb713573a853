package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/report"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func marchReport() app.ReportRequest {
	return app.ReportRequest{Year: 2025, Month: time.March, Post: testutil.DefaultPost, Note: "정상 운영"}
}

// seedSubstitution plans Alice for the 3rd, lets Bob cover for her and logs
// Bob's eight hours.
func seedSubstitution(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	plans := NewScheduleService(f.plans, f.locations)
	logs := NewActivityService(f.logs, f.locations)

	_, err := plans.SubmitPlan(ctx, planFor("Alice", 3))
	require.NoError(t, err)
	_, err = plans.RegisterSubstitution(ctx, app.SubstitutionRequest{
		Island:     testutil.DefaultIsland,
		Post:       testutil.DefaultPost,
		Date:       testutil.DefaultDate,
		Original:   "Alice",
		Substitute: "Bob",
	})
	require.NoError(t, err)
	_, err = logs.Submit(ctx, activityForm(app.ActivityRow{Day: 3, Person: "Bob", Option: domain.HoursFullDay}))
	require.NoError(t, err)
}

func TestReportService_Monthly_SubstitutionEndToEnd(t *testing.T) {
	f := setupRepos(t)
	seedSubstitution(t, f)
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout())

	rep, err := svc.Monthly(context.Background(), marchReport())
	require.NoError(t, err)
	assert.False(t, rep.Degraded())
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, testutil.DefaultIsland, rep.Request.Island, "island is derived from the post")
	assert.Equal(t, domain.PeriodMonth, rep.Request.Period)
	require.Len(t, rep.Days, 31)

	third := rep.Days[2]
	require.Len(t, third.Slots, 4)
	assert.Equal(t, "Alice", third.Slots[0].PlanOwner)
	assert.Equal(t, "Bob", third.Slots[0].ActualWorker)
	assert.Equal(t, "8H", third.Slots[0].Plan)
	assert.Equal(t, "Bob(8H)", third.Slots[0].Result)
	for _, s := range third.Slots[1:] {
		assert.True(t, s.Empty())
	}

	require.NotEmpty(t, rep.Document.Pages)
	assert.Equal(t, "두무진 안내소 운영일지", rep.Document.Title)
}

func TestReportService_Monthly_LegacyPlanRowWithoutShift(t *testing.T) {
	f := setupRepos(t)
	err := f.planBackend.WriteTable(context.Background(), "schedule",
		[]string{"year", "month", "date", "island", "post", "person", "shiftDescriptor", "note", "status", "originalPerson"},
		[][]string{{"2025", "3", "2025-03-03", testutil.DefaultIsland, testutil.DefaultPost, "Alice", "", "", "", ""}},
	)
	require.NoError(t, err)
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout())

	rep, err := svc.Monthly(context.Background(), marchReport())
	require.NoError(t, err)

	slot := rep.Days[2].Slots[0]
	assert.Equal(t, "Alice", slot.PlanOwner)
	assert.Equal(t, "8H", slot.Plan)
}

func TestReportService_Monthly_DegradesWhenPlanUnreadable(t *testing.T) {
	f := setupRepos(t)
	seedSubstitution(t, f)
	f.planBackend.ReadErr = errors.New("rate limited")
	obs := &recordingObserver{}
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout(), obs)

	rep, err := svc.Monthly(context.Background(), marchReport())
	require.NoError(t, err)
	assert.True(t, rep.PlanUnavailable)
	assert.False(t, rep.LogUnavailable)
	require.NotEmpty(t, rep.Warnings)
	assert.Contains(t, rep.Warnings[0], "schedule")
	assert.Equal(t, true, obs.last().Fields["degraded"])

	third := rep.Days[2]
	assert.Equal(t, "", third.Slots[0].PlanOwner)
	assert.Equal(t, "Bob\n(8H)", third.Slots[0].Result, "logs still surface without a plan")
}

func TestReportService_Print_RefusesPartialData(t *testing.T) {
	f := setupRepos(t)
	seedSubstitution(t, f)
	f.logBackend.ReadErr = errors.New("timeout")
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout())

	var buf bytes.Buffer
	rep, err := svc.Print(context.Background(), marchReport(), &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.True(t, rep.LogUnavailable)
	assert.Zero(t, buf.Len())
}

func TestReportService_Print_WritesWorkbook(t *testing.T) {
	f := setupRepos(t)
	seedSubstitution(t, f)
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout())

	var buf bytes.Buffer
	_, err := svc.Print(context.Background(), marchReport(), &buf)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("운영일지")
	require.NoError(t, err)

	var found bool
	for _, r := range rows {
		for _, c := range r {
			if c == "Bob(8H)" {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestReportService_SlotCountFollowsLayout(t *testing.T) {
	f := setupRepos(t)
	ctx := context.Background()
	plans := NewScheduleService(f.plans, f.locations)
	for _, p := range []string{"A", "B", "C"} {
		_, err := plans.SubmitPlan(ctx, planFor(p, 3))
		require.NoError(t, err)
	}

	layout := report.DefaultLayout()
	layout.Slots = 2
	svc := NewReportService(f.plans, f.logs, f.locations, layout)

	req := marchReport()
	req.Period = domain.PeriodFirstHalf
	rep, err := svc.Monthly(ctx, req)
	require.NoError(t, err)
	require.Len(t, rep.Days, 15)
	assert.Len(t, rep.Days[2].Slots, 2)
	assert.Equal(t, 6, rep.Document.Layout.Columns())
	assert.Equal(t, 1, rep.DroppedOwners)
	assert.Contains(t, rep.Warnings[len(rep.Warnings)-1], "did not fit in 2 slots")
}

func TestReportService_Validation(t *testing.T) {
	f := setupRepos(t)
	svc := NewReportService(f.plans, f.logs, f.locations, report.DefaultLayout())
	ctx := context.Background()

	req := marchReport()
	req.Post = ""
	_, err := svc.Monthly(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = marchReport()
	req.Island = "소청도"
	_, err = svc.Monthly(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

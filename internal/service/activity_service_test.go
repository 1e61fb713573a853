package service

import (
	"context"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/app"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityForm(rows ...app.ActivityRow) app.ActivitySubmission {
	return app.ActivitySubmission{
		Island: testutil.DefaultIsland,
		Post:   testutil.DefaultPost,
		Year:   2025,
		Month:  time.March,
		Rows:   rows,
	}
}

func TestActivityService_Submit_ResolvesHoursAndSkipsBlankRows(t *testing.T) {
	f := setupRepos(t)
	ctx := context.Background()
	svc := NewActivityService(f.logs, f.locations)

	res, err := svc.Submit(ctx, activityForm(
		app.ActivityRow{Day: 3, Person: "Alice", Option: domain.HoursFullDay, Visitors: 12, Listeners: 8, Narrations: 3, Tags: []string{"해설", "안내"}},
		app.ActivityRow{Day: 4, Person: "Alice", Option: domain.HoursHalfDay},
		app.ActivityRow{Day: 5, Person: "Alice", Option: domain.HoursCustom, CustomHours: decimal.RequireFromString("6.5")},
		app.ActivityRow{Day: 6, Person: "Alice", Option: domain.HoursCustom},
		app.ActivityRow{Day: 7, Person: "  "},
	))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Saved)
	assert.Equal(t, 2, res.Skipped)
	_, err = uuid.Parse(res.BatchID)
	assert.NoError(t, err)

	logs, err := svc.List(ctx, march)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	var hours []string
	for _, l := range logs {
		hours = append(hours, l.Hours.String())
		assert.Equal(t, domain.LogPendingReview, l.Status)
	}
	assert.Equal(t, []string{"8", "4", "6.5"}, hours)
	assert.Equal(t, 12, logs[0].Visitors)
	assert.Equal(t, []string{"해설", "안내"}, logs[0].Tags)
}

func TestActivityService_Submit_AllRowsSkippedWritesNothing(t *testing.T) {
	f := setupRepos(t)
	svc := NewActivityService(f.logs, f.locations)

	res, err := svc.Submit(context.Background(), activityForm(
		app.ActivityRow{Day: 3, Person: "Alice", Option: domain.HoursCustom},
	))
	require.NoError(t, err)
	assert.Zero(t, res.Saved)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, f.logBackend.Writes.Load())
}

func TestActivityService_Submit_Validation(t *testing.T) {
	f := setupRepos(t)
	svc := NewActivityService(f.logs, f.locations)
	ctx := context.Background()

	_, err := svc.Submit(ctx, activityForm(app.ActivityRow{Day: 3, Person: "Alice", Visitors: -1}))
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Submit(ctx, activityForm(app.ActivityRow{Day: 32, Person: "Alice"}))
	assert.ErrorIs(t, err, ErrInvalidRequest)

	form := activityForm(app.ActivityRow{Day: 3, Person: "Alice"})
	form.Post = "분바위 안내소"
	_, err = svc.Submit(ctx, form)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestActivityService_Resubmit_ReplacesSameKey(t *testing.T) {
	f := setupRepos(t)
	svc := NewActivityService(f.logs, f.locations)
	ctx := context.Background()

	_, err := svc.Submit(ctx, activityForm(app.ActivityRow{Day: 3, Person: "Alice", Visitors: 5}))
	require.NoError(t, err)
	res, err := svc.Submit(ctx, activityForm(app.ActivityRow{Day: 3, Person: "Alice", Visitors: 9}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replaced)

	logs, err := svc.List(ctx, march)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 9, logs[0].Visitors)
}

func TestActivityService_Approve(t *testing.T) {
	f := setupRepos(t)
	svc := NewActivityService(f.logs, f.locations)
	ctx := context.Background()

	_, err := svc.Submit(ctx, activityForm(
		app.ActivityRow{Day: 3, Person: "Alice"},
		app.ActivityRow{Day: 3, Person: "Bob"},
		app.ActivityRow{Day: 4, Person: "Alice"},
	))
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, march)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	n, err := svc.Approve(ctx, march)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pending, err = svc.ListPending(ctx, march)
	require.NoError(t, err)
	assert.Empty(t, pending)

	n, err = svc.Approve(ctx, march)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.Approve(ctx, app.Scope{Year: 2025})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestActivityService_ListByPerson(t *testing.T) {
	f := setupRepos(t)
	svc := NewActivityService(f.logs, f.locations)
	ctx := context.Background()

	_, err := svc.Submit(ctx, activityForm(
		app.ActivityRow{Day: 4, Person: "Alice"},
		app.ActivityRow{Day: 3, Person: "Bob"},
		app.ActivityRow{Day: 3, Person: "Alice"},
	))
	require.NoError(t, err)

	mine, err := svc.ListByPerson(ctx, "Alice", app.Scope{Year: 2025, Month: time.March})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 3, mine[0].Date.Day())
	assert.Equal(t, 4, mine[1].Date.Day())

	_, err = svc.ListByPerson(ctx, "", march)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = Query{Year: 2025, Month: time.March, Island: testutil.DefaultIsland, Post: testutil.DefaultPost}

func TestScheduleRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetScheduleRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	updated := time.Date(2025, time.February, 27, 9, 30, 0, 0, time.UTC)

	entries := []domain.ScheduleEntry{
		testutil.NewTestEntry("김해설", testutil.WithNote("단체 예약")),
		testutil.NewTestEntry("이해설", testutil.WithShift(domain.CustomShift("교육 참석"))),
		testutil.NewTestEntry("박해설", testutil.Substituting("김해설"), testutil.WithShift(domain.AfternoonHalf)),
	}
	entries[0].UpdatedAt = updated

	stats, err := repo.Upsert(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Appended)

	got, err := repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, entries[0], got.Items[0])
	assert.Equal(t, domain.CustomShift("교육 참석"), got.Items[1].Shift)
	assert.True(t, got.Items[2].IsSubstitute())
	assert.Equal(t, "김해설", got.Items[2].OriginalPerson)
}

func TestScheduleRepo_ReadsLegacyRows(t *testing.T) {
	mem := sheet.NewMemoryBackend()
	mem.Seed("schedule",
		[]string{"year", "month", "date", "island", "post", "person", "shiftDescriptor", "note", "status", "originalPerson"},
		[]string{"2025", "3", "2025-03-03", "백령도", "두무진 안내소", "김해설", "오전", "", "승인완료", ""},
		[]string{"2025", "3", "2025-03-04", "백령도", "두무진 안내소", "김해설", "행사 지원(야간)", "", "", ""},
		[]string{"2025", "3", "", "백령도", "두무진 안내소", "김해설", "종일", "", "", ""},
	)
	repo := NewSheetScheduleRepo(sheet.NewStore(mem))

	got, err := repo.ListMonth(context.Background(), march)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.Skipped)

	assert.Equal(t, domain.MorningHalf, got.Items[0].Shift)
	assert.Equal(t, domain.PlanApproved, got.Items[0].Status)
	assert.True(t, got.Items[0].UpdatedAt.IsZero())

	assert.Equal(t, "행사 지원(야간)", got.Items[1].Shift.DisplayText())
	assert.Equal(t, domain.PlanSubmitted, got.Items[1].Status)
}

func TestScheduleRepo_EmptyShiftCellIsFullDay(t *testing.T) {
	ctx := context.Background()
	mem := sheet.NewMemoryBackend()
	mem.Seed("schedule",
		[]string{"year", "month", "date", "island", "post", "person", "shiftDescriptor", "note", "status", "originalPerson"},
		[]string{"2025", "3", "2025-03-03", "백령도", "두무진 안내소", "Alice", "", "", "", ""},
	)
	repo := NewSheetScheduleRepo(sheet.NewStore(mem))

	got, err := repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, domain.FullDay, got.Items[0].Shift)
	assert.Equal(t, "8H", got.Items[0].Shift.PlanLabel())

	// An explicit no-shift entry still reads back as none.
	_, err = repo.Upsert(ctx, []domain.ScheduleEntry{testutil.NewTestEntry("Bob", testutil.WithShift(domain.NoShift))})
	require.NoError(t, err)
	got, err = repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, e := range got.Items {
		if e.Person == "Bob" {
			assert.Equal(t, domain.NoShift, e.Shift)
		}
	}
}

func TestScheduleRepo_EditReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetScheduleRepo(sheet.NewStore(sheet.NewMemoryBackend()))

	_, err := repo.Upsert(ctx, []domain.ScheduleEntry{testutil.NewTestEntry("김해설")})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, []domain.ScheduleEntry{testutil.NewTestEntry("김해설", testutil.WithShift(domain.MorningHalf))})
	require.NoError(t, err)

	got, err := repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, domain.MorningHalf, got.Items[0].Shift)
}

func TestScheduleRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetScheduleRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	a := testutil.NewTestEntry("김해설")
	b := testutil.NewTestEntry("김해설", testutil.OnDay(4))
	_, err := repo.Upsert(ctx, []domain.ScheduleEntry{a, b})
	require.NoError(t, err)

	n, err := repo.Delete(ctx, []domain.EntryKey{b.Key()})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Date.Day())
}

func TestScheduleRepo_RejectsInvalidEntry(t *testing.T) {
	repo := NewSheetScheduleRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	_, err := repo.Upsert(context.Background(), []domain.ScheduleEntry{testutil.NewTestEntry("")})
	assert.Error(t, err)
}

func TestScheduleRepo_UnavailableIsAnError(t *testing.T) {
	failing := testutil.NewFailingBackend(sheet.NewMemoryBackend())
	failing.ReadErr = errors.New("timeout")
	repo := NewSheetScheduleRepo(sheet.NewStore(failing))

	_, err := repo.ListMonth(context.Background(), march)
	assert.ErrorIs(t, err, sheet.ErrReadFailed)
}

func TestActivityRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetActivityRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	log := testutil.NewTestLog("김해설",
		testutil.WithHours("6.5"),
		testutil.WithCounts(120, 45, 3),
		testutil.WithTags("단체", "학생"),
	)

	_, err := repo.Upsert(ctx, []domain.ActivityLogEntry{log})
	require.NoError(t, err)

	got, err := repo.ListMonth(ctx, march)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.True(t, item.Hours.Equal(log.Hours))
	assert.Equal(t, 120, item.Visitors)
	assert.Equal(t, 45, item.Listeners)
	assert.Equal(t, 3, item.NarrationCount)
	assert.Equal(t, []string{"단체", "학생"}, item.Tags)
	assert.Equal(t, domain.LogPendingReview, item.Status)
	assert.True(t, log.Timestamp.Equal(item.Timestamp))
}

func TestActivityRepo_LenientCells(t *testing.T) {
	mem := sheet.NewMemoryBackend()
	mem.Seed("activityLog", ActivitySchema.Columns,
		[]string{"2025-03-03", "백령도", "두무진 안내소", "김해설", "abc", "12.0", "", "2", "", "2025-03-03 18:01:02.123456", "검토대기"},
	)
	repo := NewSheetActivityRepo(sheet.NewStore(mem))

	got, err := repo.ListMonth(context.Background(), march)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.False(t, item.HasActivity())
	assert.Equal(t, 12, item.Visitors)
	assert.Equal(t, 0, item.Listeners)
	assert.Equal(t, 18, item.Timestamp.Hour())
	assert.Equal(t, domain.LogPendingReview, item.Status)
}

func TestActivityRepo_ListByPerson(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetActivityRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	_, err := repo.Upsert(ctx, []domain.ActivityLogEntry{
		testutil.NewTestLog("김해설"),
		testutil.NewTestLog("이해설"),
		testutil.NewTestLog("김해설", testutil.LogAtPost("대청도", "서풍받이 안내소")),
	})
	require.NoError(t, err)

	got, err := repo.ListByPerson(ctx, "김해설", Query{Year: 2025, Month: time.March})
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestActivityRepo_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetActivityRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	_, err := repo.Upsert(ctx, []domain.ActivityLogEntry{
		testutil.NewTestLog("김해설"),
		testutil.NewTestLog("이해설", testutil.WithLogStatus(domain.LogApproved)),
		testutil.NewTestLog("박해설", testutil.LogAtPost("대청도", "서풍받이 안내소")),
		testutil.NewTestLog("최해설", testutil.LogOnDate(domain.NewDate(2025, time.April, 1))),
	})
	require.NoError(t, err)

	n, err := repo.SetStatus(ctx, Query{Year: 2025, Month: time.March, Island: "백령도"}, domain.LogPendingReview, domain.LogApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := repo.ListMonth(ctx, Query{})
	require.NoError(t, err)
	status := map[string]domain.LogStatus{}
	for _, l := range all.Items {
		status[l.Person] = l.Status
	}
	assert.Equal(t, map[string]domain.LogStatus{
		"김해설": domain.LogApproved,
		"이해설": domain.LogApproved,
		"박해설": domain.LogPendingReview,
		"최해설": domain.LogPendingReview,
	}, status)
}

func TestRosterRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRosterRepo(sheet.NewStore(sheet.NewMemoryBackend()))
	_, err := repo.Upsert(ctx, []domain.Guide{
		testutil.NewTestGuide("김해설", domain.RoleGuide),
		testutil.NewTestGuide("이조장", domain.RoleLeader),
		{Name: "박해설", Island: "대청도", Role: domain.RoleGuide},
	})
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, []domain.Guide{{Name: "김해설", Island: "백령도", Role: domain.RoleLeader}})
	require.NoError(t, err)

	baengnyeong, err := repo.List(ctx, "백령도")
	require.NoError(t, err)
	assert.Len(t, baengnyeong, 2)

	g, err := repo.Get(ctx, "김해설")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, g.Role)

	_, err = repo.Get(ctx, "없는사람")
	assert.ErrorIs(t, err, ErrNotFound)
}

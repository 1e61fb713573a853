package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := NewDate(2025, time.March, 7)
	for _, in := range []string{
		"2025-03-07",
		"2025-3-7",
		"2025/03/07",
		"2025.3.7",
		"2025. 3. 7.",
		"2025-03-07 09:41:12.551203",
		"2025-03-07T09:41:12Z",
	} {
		got, err := ParseDate(in)
		require.NoError(t, err, "input=%q", in)
		assert.True(t, want.Equal(got), "input=%q got=%s", in, got)
	}

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "토", WeekdayLabel(NewDate(2025, time.March, 1)))
	assert.Equal(t, "월", WeekdayLabel(NewDate(2025, time.March, 3)))
}

func TestPeriod_Days(t *testing.T) {
	assert.Len(t, PeriodFirstHalf.Days(2025, time.February), 15)
	assert.Equal(t, []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28}, PeriodSecondHalf.Days(2025, time.February))
	assert.Len(t, PeriodMonth.Days(2024, time.February), 29)

	assert.True(t, PeriodSecondHalf.Contains(2025, time.April, 30))
	assert.False(t, PeriodSecondHalf.Contains(2025, time.April, 15))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("전반기")
	require.NoError(t, err)
	assert.Equal(t, PeriodFirstHalf, p)
	assert.Equal(t, "전반기(1~15일)", p.Label())

	p, err = ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("quarter")
	assert.Error(t, err)
}

func TestLocations_Validate(t *testing.T) {
	locs := DefaultLocations()
	assert.NoError(t, locs.Validate("백령도", "두무진 안내소"))
	assert.NoError(t, locs.Validate("대청도", ""))
	assert.Error(t, locs.Validate("백령도", "분바위 안내소"))
	assert.Error(t, locs.Validate("제주도", ""))

	island, ok := locs.IslandOf("분바위 안내소")
	assert.True(t, ok)
	assert.Equal(t, "소청도", island)

	assert.NoError(t, Locations(nil).Validate("anywhere", "any post"))
}

func TestStatusAliases(t *testing.T) {
	st, err := ParseLogStatus("검토대기")
	require.NoError(t, err)
	assert.Equal(t, LogPendingReview, st)

	ps, err := ParsePlanStatus("승인완료")
	require.NoError(t, err)
	assert.Equal(t, PlanApproved, ps)

	_, err = ParsePlanStatus("rejected")
	assert.Error(t, err)
}

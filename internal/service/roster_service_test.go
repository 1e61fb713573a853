package service

import (
	"context"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_AddAndList(t *testing.T) {
	f := setupRepos(t)
	ctx := context.Background()
	svc := NewRosterService(f.roster, f.locations)

	n, err := svc.Add(ctx,
		testutil.NewTestGuide("Alice", domain.RoleLeader),
		domain.Guide{Name: " Bob ", Island: "대청도"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bob, err := svc.Get(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuide, bob.Role)
	assert.Equal(t, "대청도", bob.Island)

	onIsland, err := svc.List(ctx, testutil.DefaultIsland)
	require.NoError(t, err)
	require.Len(t, onIsland, 1)
	assert.Equal(t, "Alice", onIsland[0].Name)

	_, err = svc.Get(ctx, "Zoe")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRosterService_Validation(t *testing.T) {
	f := setupRepos(t)
	svc := NewRosterService(f.roster, f.locations)
	ctx := context.Background()

	_, err := svc.Add(ctx)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.Add(ctx, domain.Guide{Name: "Alice", Island: "제주도"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.Add(ctx, domain.Guide{Island: testutil.DefaultIsland})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestDisruptionService(t *testing.T) {
	f := setupRepos(t)
	ctx := context.Background()
	recorder := disruption.NewSheetFeed(f.store)
	static := disruption.StaticFeed{Days: disruption.NewDaySet(domain.NewDate(2025, time.March, 20))}
	svc := NewDisruptionService(recorder, disruption.Union{static, recorder})

	err := svc.Record(ctx,
		disruption.FerryStatus{Date: testutil.DefaultDate, Route: "인천-백령", Scheduled: 2, Operated: 0},
		disruption.FerryStatus{Date: domain.NewDate(2025, time.March, 4), Route: "인천-백령", Scheduled: 2, Operated: 2},
	)
	require.NoError(t, err)

	days, err := svc.Days(ctx, "인천-백령", 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{testutil.DefaultDate, domain.NewDate(2025, time.March, 20)}, days.Days())

	err = svc.Record(ctx, disruption.FerryStatus{Date: testutil.DefaultDate})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

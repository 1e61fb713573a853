package service

import (
	"context"
	"sync"
	"testing"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/geopark-ops/guidelog/internal/testutil"
)

// fixture keeps the schedule and the activity log on separate backends so a
// test can fail one source and keep the other.
type fixture struct {
	planBackend *testutil.FailingBackend
	logBackend  *testutil.FailingBackend
	plans       *repository.SheetScheduleRepo
	logs        *repository.SheetActivityRepo
	roster      *repository.SheetRosterRepo
	store       *sheet.Store
	locations   domain.Locations
}

func setupRepos(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		planBackend: testutil.NewFailingBackend(sheet.NewMemoryBackend()),
		logBackend:  testutil.NewFailingBackend(sheet.NewMemoryBackend()),
		locations:   domain.DefaultLocations(),
	}
	f.store = sheet.NewStore(sheet.NewMemoryBackend())
	f.plans = repository.NewSheetScheduleRepo(sheet.NewStore(f.planBackend))
	f.logs = repository.NewSheetActivityRepo(sheet.NewStore(f.logBackend))
	f.roster = repository.NewSheetRosterRepo(f.store)
	return f
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Wednesday of week 2 for placements starting Monday 2024-01-01.
var testToday = testutil.Date(2024, 1, 10)

type testEnv struct {
	database    *db.DB
	placements  *repository.SQLPlacementRepo
	enrollments *repository.SQLEnrollmentRepo
	entries     *repository.SQLLogEntryRepo
	cursors     *repository.SQLCursorRepo
	uow         db.UnitOfWork
	clock       *fakeClock
	opts        []Option
}

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	conn := database.Conn()
	clock := &fakeClock{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	tokens := 0
	return &testEnv{
		database:    database,
		placements:  repository.NewSQLPlacementRepo(conn),
		enrollments: repository.NewSQLEnrollmentRepo(conn),
		entries:     repository.NewSQLLogEntryRepo(conn),
		cursors:     repository.NewSQLCursorRepo(conn),
		uow:         testutil.NewTestUoW(database),
		clock:       clock,
		opts: []Option{
			WithClock(clock.Now),
			WithTokenSource(func() string {
				tokens++
				return fmt.Sprintf("token-%d", tokens)
			}),
		},
	}
}

func (env *testEnv) fieldLog() FieldLogService {
	return NewFieldLogService(env.placements, env.enrollments, env.entries, env.opts...)
}

func (env *testEnv) review() ReviewService {
	return NewReviewService(env.entries, env.cursors, env.opts...)
}

// seed stores a placement and an enrollment of s1 with the given status.
func (env *testEnv) seed(t *testing.T, status domain.EnrollmentStatus, opts ...testutil.PlacementOption) *domain.Placement {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestPlacement("Teaching Practice", opts...)
	require.NoError(t, env.placements.Create(ctx, p))
	require.NoError(t, env.enrollments.Create(ctx,
		testutil.NewTestEnrollment("s1", p.ID, testutil.WithEnrollmentStatus(status))))
	return p
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

// conflictOnCreate simulates a concurrent writer: it stores the entry it is
// asked to create under another ID first, then reports the slot as taken.
type conflictOnCreate struct {
	repository.LogEntryRepo
}

func (r conflictOnCreate) Create(ctx context.Context, e *domain.LogEntry) error {
	winner := e.Clone()
	winner.ID = "winner"
	if err := r.LogEntryRepo.Create(ctx, winner); err != nil {
		return err
	}
	return fmt.Errorf("inserting log entry: %w", repository.ErrConflict)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logEntryTestSetup(t *testing.T) (*SQLLogEntryRepo, *domain.Placement) {
	t.Helper()
	conn := testutil.NewTestDB(t).Conn()
	p := testutil.NewTestPlacement("TP")
	require.NoError(t, NewSQLPlacementRepo(conn).Create(context.Background(), p))
	return NewSQLLogEntryRepo(conn), p
}

func TestLogEntryRepo_CreateAndGetByID_Composite(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestWeeklyEntry("s1", p.ID, 2,
		testutil.WithDay(testutil.Date(2024, 1, 10), map[string]any{"tasks_performed": "Marked books", "hours": 6}),
		testutil.WithDay(testutil.Date(2024, 1, 8), map[string]any{"tasks_performed": "Observed class"}),
		testutil.WithReflection("Busy week"))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PeriodNumber)
	assert.Equal(t, testutil.Date(2024, 1, 8), got.LogDate)
	assert.Equal(t, "Busy week", got.Reflection)
	require.Len(t, got.Days, 2)
	assert.Equal(t, testutil.Date(2024, 1, 10), got.Days[0].Date, "day order is preserved")
	assert.Equal(t, "Marked books", got.Days[0].Fields["tasks_performed"])
	assert.Equal(t, float64(6), got.Days[0].Fields["hours"])
	assert.Nil(t, got.Fields)
	assert.Equal(t, domain.SubmissionDraft, got.SubmissionStatus)
	assert.Empty(t, got.VerificationToken)
	assert.Nil(t, got.SubmittedAt)
}

func TestLogEntryRepo_CreateAndGet_Daily(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestDailyEntry("s1", p.ID, testutil.Date(2024, 1, 9))
	e.Fields = map[string]any{"notes": "Induction"}
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByPeriodKey(ctx, "s1", p.ID, "2024-01-09")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "Induction", got.Fields["notes"])
	assert.Nil(t, got.Days)
}

func TestLogEntryRepo_DuplicatePeriodConflicts(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s1", p.ID, 1)))
	err := repo.Create(ctx, testutil.NewTestWeeklyEntry("s1", p.ID, 1))
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s2", p.ID, 1)), "other students are independent")
}

func TestLogEntryRepo_UpdateRoundTripsReviewFields(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestWeeklyEntry("s1", p.ID, 1)
	require.NoError(t, repo.Create(ctx, e))

	now := time.Date(2024, 1, 12, 16, 30, 0, 0, time.UTC)
	require.NoError(t, e.UpsertDay(testutil.Date(2024, 1, 2), map[string]any{"x": "y"}, now))
	require.NoError(t, e.Submit("tok-1", now))
	require.NoError(t, e.Verify(domain.SupervisorRejected, "Too short", now.Add(time.Hour)))
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionSubmitted, got.SubmissionStatus)
	assert.Equal(t, domain.SupervisorRejected, got.SupervisorStatus)
	assert.Equal(t, domain.DisplayRejected, got.DisplayStatus())
	assert.Equal(t, "Too short", got.SupervisorComment)
	require.NotNil(t, got.SupervisorVerifiedAt)
	assert.Equal(t, now.Add(time.Hour), *got.SupervisorVerifiedAt)
	require.NotNil(t, got.SubmittedAt)
	assert.Equal(t, now, *got.SubmittedAt)
	assert.Len(t, got.Days, 1)
}

func TestLogEntryRepo_Update_NotFound(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	e := testutil.NewTestWeeklyEntry("s1", p.ID, 1)
	assert.ErrorIs(t, repo.Update(context.Background(), e), ErrNotFound)
}

func TestLogEntryRepo_GetByToken_Empty(t *testing.T) {
	repo, _ := logEntryTestSetup(t)
	_, err := repo.GetByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogEntryRepo_ListByStudentPlacement(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s1", p.ID, 3)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s1", p.ID, 1)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s2", p.ID, 2)))

	list, err := repo.ListByStudentPlacement(ctx, "s1", p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].PeriodNumber)
	assert.Equal(t, 3, list[1].PeriodNumber)
}

func TestLogEntryRepo_ListSubmittedSince(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	old := testutil.NewTestWeeklyEntry("s1", p.ID, 1, testutil.WithSubmitted(), testutil.WithUpdatedAt(base.Add(-time.Hour)))
	fresh := testutil.NewTestWeeklyEntry("s2", p.ID, 1, testutil.WithSubmitted(), testutil.WithUpdatedAt(base.Add(time.Minute)))
	draft := testutil.NewTestWeeklyEntry("s3", p.ID, 1, testutil.WithUpdatedAt(base.Add(time.Hour)))
	for _, e := range []*domain.LogEntry{old, fresh, draft} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListSubmittedSince(ctx, p.ID, base)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)

	all, err := repo.ListSubmittedSince(ctx, p.ID, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLogEntryRepo_Delete(t *testing.T) {
	repo, p := logEntryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestWeeklyEntry("s1", p.ID, 1)
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)

	require.NoError(t, repo.Create(ctx, testutil.NewTestWeeklyEntry("s1", p.ID, 1)), "freed period key can be reused")
}

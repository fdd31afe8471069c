package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/importer"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func validImportSchema() *importer.PlacementImport {
	return &importer.PlacementImport{
		Title:       "Teaching Practice 2024",
		StartDate:   "2024-01-01",
		EndDate:     ptrStr("2024-03-29"),
		Cadence:     "weekly",
		LogTemplate: "teaching_practice",
		Milestones: []importer.MilestoneImport{
			{Date: "2024-02-14", Title: "Field Visit", Category: "meeting"},
		},
		Enrollments: []importer.EnrollmentImport{
			{StudentID: "s1", Status: "approved", ScheduleDays: []string{"monday", "wednesday"}},
			{StudentID: "s2", SupervisorName: "Mrs Otieno", SupervisorEmail: "otieno@school.example"},
		},
	}
}

func writeImportJSON(t *testing.T, schema *importer.PlacementImport) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "placement.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestCreatePlacement(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewPlacementService(env.placements, env.uow, env.opts...)

	end := testutil.Date(2024, 1, 24)
	p := &domain.Placement{Title: "Attachment", StartDate: testutil.Date(2024, 1, 1), EndDate: &end, Cadence: domain.CadenceWeekly}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.TemplateCustom, p.LogTemplate)
	assert.Equal(t, env.clock.Now(), p.CreatedAt)
	assert.NotEmpty(t, p.Milestones, "bounded placements get default milestones")

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Attachment", got.Title)
	assert.Len(t, got.Milestones, len(p.Milestones))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreatePlacement_Invalid(t *testing.T) {
	env := setupRepos(t)
	svc := NewPlacementService(env.placements, env.uow, env.opts...)

	end := testutil.Date(2023, 12, 1)
	p := &domain.Placement{StartDate: testutil.Date(2024, 1, 1), EndDate: &end, Cadence: "fortnightly"}
	err := svc.Create(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), `invalid cadence "fortnightly"`)
	assert.Contains(t, err.Error(), "end date is before start date")

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportPlacement_FromFile(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewPlacementService(env.placements, env.uow, env.opts...)

	res, err := svc.Import(ctx, writeImportJSON(t, validImportSchema()))
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateTeachingPractice, res.Placement.LogTemplate)

	stored, err := env.placements.GetByID(ctx, res.Placement.ID)
	require.NoError(t, err)
	require.Len(t, stored.Milestones, 1, "explicit milestones replace the defaults")
	assert.Equal(t, domain.EventMeeting, stored.Milestones[0].Category)

	s1, err := env.enrollments.Get(ctx, "s1", res.Placement.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentApproved, s1.Status)
	assert.Equal(t, []string{"monday", "wednesday"}, s1.ScheduleDays)

	s2, err := env.enrollments.Get(ctx, "s2", res.Placement.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentPending, s2.Status)
	assert.Equal(t, "otieno@school.example", s2.Supervisor.Email)
}

func TestImportPlacement_MissingFile(t *testing.T) {
	env := setupRepos(t)
	svc := NewPlacementService(env.placements, env.uow)

	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportPlacement_ValidationErrors(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewPlacementService(env.placements, env.uow)

	schema := validImportSchema()
	schema.Cadence = "hourly"
	schema.Enrollments = append(schema.Enrollments, importer.EnrollmentImport{StudentID: "s1"})

	_, err := svc.ImportFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "cadence")
	assert.Contains(t, err.Error(), `duplicate student "s1"`)

	all, err := env.placements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportPlacement_RollbackOnEnrollmentFailure(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()

	// #1 = placement insert, #2 = first enrollment, #3 = second enrollment.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.database,
		FailOn: 3,
		Err:    errors.New("injected enrollment failure"),
	}
	svc := NewPlacementService(env.placements, failUoW)

	_, err := svc.ImportFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected enrollment failure")
	assert.Contains(t, err.Error(), "enrolling s2")

	all, err := env.placements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no placement survives the rollback")
}

func TestImportPlacement_ReportsUseCase(t *testing.T) {
	env := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewPlacementService(env.placements, env.uow, WithObserver(obs))

	_, err := svc.ImportFromSchema(context.Background(), validImportSchema())
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "import-placement", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["enrollment_count"])
	assert.Equal(t, 1, ev.Fields["milestone_count"])
}

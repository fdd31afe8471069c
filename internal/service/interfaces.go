package service

import (
	"context"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/importer"
)

type PlacementService interface {
	Create(ctx context.Context, p *domain.Placement) error
	Get(ctx context.Context, id string) (*domain.Placement, error)
	List(ctx context.Context) ([]*domain.Placement, error)
	Import(ctx context.Context, path string) (*importer.Result, error)
	ImportFromSchema(ctx context.Context, schema *importer.PlacementImport) (*importer.Result, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, e *domain.Enrollment) error
	Get(ctx context.Context, studentID, placementID string) (*domain.Enrollment, error)
	ListByPlacement(ctx context.Context, placementID string) ([]*domain.Enrollment, error)
	SetStatus(ctx context.Context, studentID, placementID string, status domain.EnrollmentStatus) (*domain.Enrollment, error)
}

// FieldLogService is the student-facing log workflow. All validation runs
// before any write.
type FieldLogService interface {
	ComputeCurrentPeriod(ctx context.Context, placementID string, today time.Time) (*app.CurrentPeriod, error)
	RequestNewPeriod(ctx context.Context, studentID, placementID string, today time.Time) (*app.NewPeriodResult, error)
	LogDailyEntry(ctx context.Context, studentID, placementID string, date time.Time, fields map[string]any) (*domain.LogEntry, error)

	Get(ctx context.Context, entryID string) (*domain.LogEntry, error)
	List(ctx context.Context, studentID, placementID string, filter domain.LogFilter) ([]*domain.LogEntry, error)

	UpsertDay(ctx context.Context, entryID string, date time.Time, fields map[string]any) (*domain.LogEntry, error)
	RemoveDay(ctx context.Context, entryID string, date time.Time) (*domain.LogEntry, error)
	SetReflection(ctx context.Context, entryID, text string) (*domain.LogEntry, error)
	SetFields(ctx context.Context, entryID string, fields map[string]any) (*domain.LogEntry, error)
	SubmitForAssessment(ctx context.Context, entryID string) (*domain.LogEntry, error)
	Delete(ctx context.Context, entryID string) error
}

type TimelineService interface {
	BuildTimeline(ctx context.Context, studentID, placementID string, includeLogEvents bool, today time.Time) (*app.TimelineView, error)
}

// ReviewService holds the supervisor and instructor actions.
type ReviewService interface {
	VerifyByToken(ctx context.Context, token string, decision domain.SupervisorStatus, comment string) (*domain.LogEntry, error)
	MarkRead(ctx context.Context, entryID string) (*domain.LogEntry, error)
	Reopen(ctx context.Context, entryID string) (*domain.LogEntry, error)
	Inbox(ctx context.Context, instructorID, placementID string) (*app.Inbox, error)
	AdvanceCursor(ctx context.Context, instructorID, placementID string, at time.Time) error
}

type ProgressService interface {
	Summary(ctx context.Context, studentID, placementID string, today time.Time) (*app.ProgressSummary, error)
}

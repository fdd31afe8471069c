package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
)

type PlacementRepo interface {
	Create(ctx context.Context, p *domain.Placement) error
	GetByID(ctx context.Context, id string) (*domain.Placement, error)
	List(ctx context.Context) ([]*domain.Placement, error)
}

type EnrollmentRepo interface {
	Create(ctx context.Context, e *domain.Enrollment) error
	Get(ctx context.Context, studentID, placementID string) (*domain.Enrollment, error)
	ListByPlacement(ctx context.Context, placementID string) ([]*domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, now time.Time) error
}

// LogEntryRepo persists log entries. Create returns ErrConflict when the
// (student, placement, period key) slot is already taken.
type LogEntryRepo interface {
	Create(ctx context.Context, e *domain.LogEntry) error
	GetByID(ctx context.Context, id string) (*domain.LogEntry, error)
	GetByToken(ctx context.Context, token string) (*domain.LogEntry, error)
	GetByPeriodKey(ctx context.Context, studentID, placementID, periodKey string) (*domain.LogEntry, error)
	ListByStudentPlacement(ctx context.Context, studentID, placementID string) ([]*domain.LogEntry, error)
	// ListSubmittedSince returns submitted entries of a placement updated
	// strictly after since, oldest first.
	ListSubmittedSince(ctx context.Context, placementID string, since time.Time) ([]*domain.LogEntry, error)
	Update(ctx context.Context, e *domain.LogEntry) error
	Delete(ctx context.Context, id string) error
}

type CursorRepo interface {
	Get(ctx context.Context, userID, scope string) (*domain.ViewCursor, error)
	Upsert(ctx context.Context, c *domain.ViewCursor) error
}

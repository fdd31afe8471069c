package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
)

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type enrollmentService struct {
	placements  repository.PlacementRepo
	enrollments repository.EnrollmentRepo
	opts        options
}

func NewEnrollmentService(placements repository.PlacementRepo, enrollments repository.EnrollmentRepo, opts ...Option) EnrollmentService {
	return &enrollmentService{placements: placements, enrollments: enrollments, opts: newOptions(opts)}
}

// Enroll records a pending enrollment unless a status is given. A student
// can be enrolled in a placement once.
func (s *enrollmentService) Enroll(ctx context.Context, e *domain.Enrollment) (err error) {
	done := s.opts.track(ctx, "enroll", map[string]any{"student": e.StudentID, "placement": e.PlacementID})
	defer func() { done(err) }()

	if e.StudentID == "" {
		return fmt.Errorf("student id is required")
	}
	for i, d := range e.ScheduleDays {
		d = strings.ToLower(strings.TrimSpace(d))
		if !weekdays[d] {
			return fmt.Errorf("schedule day %q is not a weekday name", e.ScheduleDays[i])
		}
		e.ScheduleDays[i] = d
	}
	if _, err := s.placements.GetByID(ctx, e.PlacementID); err != nil {
		return storeErr("loading placement", err)
	}
	if e.Status == "" {
		e.Status = domain.EnrollmentPending
	}
	now := s.opts.now()
	if e.ID == "" {
		e.ID = s.opts.newID()
	}
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.enrollments.Create(ctx, e); err != nil {
		return storeErr("creating enrollment", err)
	}
	return nil
}

func (s *enrollmentService) Get(ctx context.Context, studentID, placementID string) (*domain.Enrollment, error) {
	e, err := s.enrollments.Get(ctx, studentID, placementID)
	if err != nil {
		return nil, storeErr("loading enrollment", err)
	}
	return e, nil
}

func (s *enrollmentService) ListByPlacement(ctx context.Context, placementID string) ([]*domain.Enrollment, error) {
	es, err := s.enrollments.ListByPlacement(ctx, placementID)
	if err != nil {
		return nil, storeErr("listing enrollments", err)
	}
	return es, nil
}

func (s *enrollmentService) SetStatus(ctx context.Context, studentID, placementID string, status domain.EnrollmentStatus) (*domain.Enrollment, error) {
	switch status {
	case domain.EnrollmentPending, domain.EnrollmentApproved, domain.EnrollmentRejected:
	default:
		return nil, fmt.Errorf("invalid enrollment status %q", status)
	}
	e, err := s.Get(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}
	now := s.opts.now()
	if err := s.enrollments.UpdateStatus(ctx, e.ID, status, now); err != nil {
		return nil, storeErr("updating enrollment", err)
	}
	e.Status, e.UpdatedAt = status, now
	return e, nil
}

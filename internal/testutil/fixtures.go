package testutil

import (
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/google/uuid"
)

// Date returns the civil date y-m-d at midnight UTC.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Placement options
type PlacementOption func(*domain.Placement)

func WithCadence(c domain.Cadence) PlacementOption {
	return func(p *domain.Placement) {
		p.Cadence = c
	}
}

func WithStartDate(d time.Time) PlacementOption {
	return func(p *domain.Placement) {
		p.StartDate = d
	}
}

func WithEndDate(d time.Time) PlacementOption {
	return func(p *domain.Placement) {
		p.EndDate = &d
	}
}

func WithTemplate(k domain.TemplateKind) PlacementOption {
	return func(p *domain.Placement) {
		p.LogTemplate = k
	}
}

func WithMilestones(ms ...domain.Milestone) PlacementOption {
	return func(p *domain.Placement) {
		p.Milestones = ms
	}
}

// NewTestPlacement returns a weekly custom-template placement starting on
// Monday 2024-01-01.
func NewTestPlacement(title string, opts ...PlacementOption) *domain.Placement {
	now := time.Now().UTC()
	p := &domain.Placement{
		ID:          uuid.New().String(),
		Title:       title,
		StartDate:   Date(2024, 1, 1),
		Cadence:     domain.CadenceWeekly,
		LogTemplate: domain.TemplateCustom,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enrollment options
type EnrollmentOption func(*domain.Enrollment)

func WithEnrollmentStatus(s domain.EnrollmentStatus) EnrollmentOption {
	return func(e *domain.Enrollment) {
		e.Status = s
	}
}

func WithScheduleDays(days ...string) EnrollmentOption {
	return func(e *domain.Enrollment) {
		e.ScheduleDays = days
	}
}

func WithSupervisor(name, email string) EnrollmentOption {
	return func(e *domain.Enrollment) {
		e.Supervisor = domain.SupervisorContact{Name: name, Email: email}
	}
}

// NewTestEnrollment returns an approved enrollment.
func NewTestEnrollment(studentID, placementID string, opts ...EnrollmentOption) *domain.Enrollment {
	now := time.Now().UTC()
	e := &domain.Enrollment{
		ID:          uuid.New().String(),
		StudentID:   studentID,
		PlacementID: placementID,
		Status:      domain.EnrollmentApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LogEntry options
type LogEntryOption func(*domain.LogEntry)

func WithDay(date time.Time, fields map[string]any) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Days = append(e.Days, domain.DayEntry{Date: date, Fields: fields})
	}
}

func WithReflection(text string) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Reflection = text
	}
}

// WithSubmitted marks the entry submitted with a fresh verification token.
func WithSubmitted() LogEntryOption {
	return func(e *domain.LogEntry) {
		at := e.CreatedAt
		e.SubmissionStatus = domain.SubmissionSubmitted
		e.SupervisorStatus = domain.SupervisorPending
		e.InstructorStatus = domain.InstructorUnread
		e.VerificationToken = uuid.New().String()
		e.SubmittedAt = &at
	}
}

func WithSupervisorStatus(s domain.SupervisorStatus) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.SupervisorStatus = s
	}
}

func WithUpdatedAt(t time.Time) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.UpdatedAt = t
	}
}

// NewTestWeeklyEntry returns a draft weekly entry for period n of a
// placement starting 2024-01-01.
func NewTestWeeklyEntry(studentID, placementID string, n int, opts ...LogEntryOption) *domain.LogEntry {
	now := time.Now().UTC()
	start := Date(2024, 1, 1).AddDate(0, 0, (n-1)*7)
	e := domain.NewDraft(uuid.New().String(), studentID, placementID, domain.CadenceWeekly, n, start, now)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestDailyEntry returns a draft daily entry for date.
func NewTestDailyEntry(studentID, placementID string, date time.Time, opts ...LogEntryOption) *domain.LogEntry {
	now := time.Now().UTC()
	e := domain.NewDraft(uuid.New().String(), studentID, placementID, domain.CadenceDaily, 0, date, now)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

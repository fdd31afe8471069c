package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/alexanderramin/fieldlog/internal/template"
)

type fieldLogService struct {
	placements  repository.PlacementRepo
	enrollments repository.EnrollmentRepo
	entries     repository.LogEntryRepo
	opts        options
}

func NewFieldLogService(
	placements repository.PlacementRepo,
	enrollments repository.EnrollmentRepo,
	entries repository.LogEntryRepo,
	opts ...Option,
) FieldLogService {
	return &fieldLogService{
		placements:  placements,
		enrollments: enrollments,
		entries:     entries,
		opts:        newOptions(opts),
	}
}

func (s *fieldLogService) placement(ctx context.Context, id string) (*domain.Placement, error) {
	p, err := s.placements.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("loading placement", err)
	}
	return p, nil
}

func (s *fieldLogService) entry(ctx context.Context, id string) (*domain.LogEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("loading log entry", err)
	}
	return e, nil
}

func (s *fieldLogService) enrollment(ctx context.Context, studentID, placementID string) (*domain.Enrollment, error) {
	e, err := s.enrollments.Get(ctx, studentID, placementID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("student %s is not enrolled: %w", studentID, domain.ErrEnrollmentNotApproved)
	}
	if err != nil {
		return nil, storeErr("loading enrollment", err)
	}
	return e, nil
}

func (s *fieldLogService) ownEntries(ctx context.Context, studentID, placementID string) ([]*domain.LogEntry, error) {
	entries, err := s.entries.ListByStudentPlacement(ctx, studentID, placementID)
	if err != nil {
		return nil, storeErr("loading log entries", err)
	}
	return entries, nil
}

func (s *fieldLogService) ComputeCurrentPeriod(ctx context.Context, placementID string, today time.Time) (*app.CurrentPeriod, error) {
	p, err := s.placement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	today = scheduler.DateOf(today)

	cur := &app.CurrentPeriod{PlacementID: p.ID, Cadence: p.Cadence}
	if !p.Cadence.IsComposite() {
		cur.Window = domain.PeriodWindow{Label: scheduler.FormatDate(today), Start: today, End: today}
		return cur, nil
	}

	length := scheduler.CadenceLength(p.Cadence)
	n := scheduler.CurrentPeriodNumber(p.StartDate, length, today)
	if n < 1 {
		return nil, fmt.Errorf("starts %s: %w", scheduler.FormatDate(p.StartDate), domain.ErrPeriodNotStarted)
	}
	cur.Number = n
	cur.Window = scheduler.WindowFor(p.Cadence, p.StartDate, n)
	return cur, nil
}

func (s *fieldLogService) RequestNewPeriod(ctx context.Context, studentID, placementID string, today time.Time) (res *app.NewPeriodResult, err error) {
	fields := map[string]any{"student": studentID, "placement": placementID}
	done := s.opts.track(ctx, "request-new-period", fields)
	defer func() { done(err) }()

	p, err := s.placement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	enr, err := s.enrollment(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}
	existing, err := s.ownEntries(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}

	adm, err := scheduler.RequestNewPeriod(p, enr, existing, today, s.opts.now())
	if err != nil {
		return nil, err
	}
	if adm.Kind == scheduler.AdmitResume {
		fields["outcome"] = app.OutcomeResumed
		return &app.NewPeriodResult{Entry: adm.Entry, Window: adm.Window, Outcome: app.OutcomeResumed}, nil
	}

	draft := adm.Entry
	draft.ID = s.opts.newID()
	if err = s.entries.Create(ctx, draft); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			return nil, storeErr("creating log entry", err)
		}
		if !p.Cadence.IsComposite() {
			return nil, fmt.Errorf("%s: %w", scheduler.FormatDate(draft.LogDate), domain.ErrDuplicatePeriod)
		}
		// Another write took the slot between our read and create.
		stored, getErr := s.entries.GetByPeriodKey(ctx, studentID, placementID, draft.PeriodKey())
		if getErr != nil {
			return nil, storeErr("re-reading log entry", getErr)
		}
		fields["outcome"] = app.OutcomeRecovered
		return &app.NewPeriodResult{Entry: stored, Window: adm.Window, Outcome: app.OutcomeRecovered}, nil
	}
	fields["outcome"] = app.OutcomeCreated
	return &app.NewPeriodResult{Entry: draft, Window: adm.Window, Outcome: app.OutcomeCreated}, nil
}

func (s *fieldLogService) LogDailyEntry(ctx context.Context, studentID, placementID string, date time.Time, payload map[string]any) (entry *domain.LogEntry, err error) {
	done := s.opts.track(ctx, "log-daily-entry", map[string]any{"student": studentID, "placement": placementID, "date": scheduler.FormatDate(date)})
	defer func() { done(err) }()

	p, err := s.placement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if p.Cadence.IsComposite() {
		return nil, fmt.Errorf("placement %s logs %s periods, open one with a new period request", p.ID, p.Cadence)
	}
	enr, err := s.enrollment(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}
	if !enr.IsApproved() {
		return nil, domain.ErrEnrollmentNotApproved
	}
	existing, err := s.ownEntries(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}

	now := s.opts.now()
	adm, err := scheduler.AdmitDailyDate(p, studentID, existing, date, now)
	if err != nil {
		return nil, err
	}
	draft := adm.Entry
	if err := draft.SetFields(payload, now); err != nil {
		return nil, err
	}
	if err := checkPayload(p, draft.Fields); err != nil {
		return nil, err
	}

	draft.ID = s.opts.newID()
	if err := s.entries.Create(ctx, draft); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", scheduler.FormatDate(draft.LogDate), domain.ErrDuplicatePeriod)
		}
		return nil, storeErr("creating log entry", err)
	}
	return draft, nil
}

func checkPayload(p *domain.Placement, fields map[string]any) error {
	t, ok := template.Lookup(p.LogTemplate)
	if !ok {
		return nil
	}
	return template.Check(fields, t)
}

func (s *fieldLogService) Get(ctx context.Context, entryID string) (*domain.LogEntry, error) {
	return s.entry(ctx, entryID)
}

func (s *fieldLogService) List(ctx context.Context, studentID, placementID string, filter domain.LogFilter) ([]*domain.LogEntry, error) {
	entries, err := s.ownEntries(ctx, studentID, placementID)
	if err != nil {
		return nil, err
	}
	var out []*domain.LogEntry
	for _, e := range entries {
		if e.Matches(filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

// edit loads the entry and applies fn through the two-phase update.
func (s *fieldLogService) edit(ctx context.Context, name, entryID string, fn func(p *domain.Placement, e *domain.LogEntry, now time.Time) error) (entry *domain.LogEntry, err error) {
	done := s.opts.track(ctx, name, map[string]any{"entry": entryID})
	defer func() { done(err) }()

	current, err := s.entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	p, err := s.placement(ctx, current.PlacementID)
	if err != nil {
		return nil, err
	}
	now := s.opts.now()
	return mutateEntry(ctx, s.entries, current, func(e *domain.LogEntry) error {
		return fn(p, e, now)
	})
}

func (s *fieldLogService) UpsertDay(ctx context.Context, entryID string, date time.Time, payload map[string]any) (*domain.LogEntry, error) {
	date = scheduler.DateOf(date)
	return s.edit(ctx, "upsert-day", entryID, func(p *domain.Placement, e *domain.LogEntry, now time.Time) error {
		if err := e.UpsertDay(date, payload, now); err != nil {
			return err
		}
		day, _ := e.Day(date)
		return checkPayload(p, day.Fields)
	})
}

func (s *fieldLogService) RemoveDay(ctx context.Context, entryID string, date time.Time) (*domain.LogEntry, error) {
	date = scheduler.DateOf(date)
	return s.edit(ctx, "remove-day", entryID, func(_ *domain.Placement, e *domain.LogEntry, now time.Time) error {
		return e.RemoveDay(date, now)
	})
}

func (s *fieldLogService) SetReflection(ctx context.Context, entryID, text string) (*domain.LogEntry, error) {
	return s.edit(ctx, "set-reflection", entryID, func(_ *domain.Placement, e *domain.LogEntry, now time.Time) error {
		return e.SetReflection(text, now)
	})
}

func (s *fieldLogService) SetFields(ctx context.Context, entryID string, payload map[string]any) (*domain.LogEntry, error) {
	return s.edit(ctx, "set-fields", entryID, func(p *domain.Placement, e *domain.LogEntry, now time.Time) error {
		if err := e.SetFields(payload, now); err != nil {
			return err
		}
		return checkPayload(p, e.Fields)
	})
}

func (s *fieldLogService) SubmitForAssessment(ctx context.Context, entryID string) (*domain.LogEntry, error) {
	return s.edit(ctx, "submit-for-assessment", entryID, func(_ *domain.Placement, e *domain.LogEntry, now time.Time) error {
		return e.Submit(s.opts.newToken(), now)
	})
}

func (s *fieldLogService) Delete(ctx context.Context, entryID string) (err error) {
	done := s.opts.track(ctx, "delete-log-entry", map[string]any{"entry": entryID})
	defer func() { done(err) }()

	e, err := s.entry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := e.CanDelete(); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, entryID); err != nil {
		return storeErr("deleting log entry", err)
	}
	return nil
}

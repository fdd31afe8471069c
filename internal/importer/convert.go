package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/alexanderramin/fieldlog/internal/timeline"
	"github.com/google/uuid"
)

// Result is a converted import ready for persistence.
type Result struct {
	Placement   *domain.Placement
	Enrollments []*domain.Enrollment
}

// Convert transforms a validated PlacementImport into domain objects ready
// for persistence. Call ValidateImportSchema first; Convert assumes the
// schema is valid. Bounded placements without listed milestones get the
// default set.
func Convert(schema *PlacementImport, now time.Time) (*Result, error) {
	now = now.UTC()

	start, err := scheduler.ParseDate(schema.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	var end *time.Time
	if schema.EndDate != nil {
		t, err := scheduler.ParseDate(*schema.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		end = &t
	}

	cadence := domain.Cadence(schema.Cadence)
	p := &domain.Placement{
		ID:          uuid.New().String(),
		Title:       schema.Title,
		StartDate:   start,
		EndDate:     end,
		Cadence:     cadence,
		LogTemplate: domain.TemplateKind(domain.CoalesceStr(schema.LogTemplate, string(domain.TemplateCustom))),
		Rubric:      schema.Rubric,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i, m := range schema.Milestones {
		date, err := scheduler.ParseDate(m.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing milestones[%d].date: %w", i, err)
		}
		p.Milestones = append(p.Milestones, domain.Milestone{
			ID:          uuid.New().String(),
			Date:        date,
			Title:       m.Title,
			Category:    domain.EventCategory(domain.CoalesceStr(m.Category, string(domain.EventMilestone))),
			Description: m.Description,
		})
	}

	if len(p.Milestones) == 0 && end != nil {
		p.Milestones = timeline.DefaultMilestones(start, *end, cadence)
	}

	res := &Result{Placement: p}
	for _, e := range schema.Enrollments {
		res.Enrollments = append(res.Enrollments, &domain.Enrollment{
			ID:           uuid.New().String(),
			StudentID:    e.StudentID,
			PlacementID:  p.ID,
			Status:       domain.EnrollmentStatus(domain.CoalesceStr(e.Status, string(domain.EnrollmentPending))),
			ScheduleDays: e.ScheduleDays,
			Supervisor:   domain.SupervisorContact{Name: e.SupervisorName, Email: e.SupervisorEmail},
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return res, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/importer"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/timeline"
)

type placementService struct {
	placements repository.PlacementRepo
	uow        db.UnitOfWork
	opts       options
}

func NewPlacementService(placements repository.PlacementRepo, uow db.UnitOfWork, opts ...Option) PlacementService {
	return &placementService{placements: placements, uow: uow, opts: newOptions(opts)}
}

func validatePlacement(p *domain.Placement) error {
	var problems []string
	if strings.TrimSpace(p.Title) == "" {
		problems = append(problems, "title is required")
	}
	if p.StartDate.IsZero() {
		problems = append(problems, "start date is required")
	}
	if !domain.ValidCadences[string(p.Cadence)] {
		problems = append(problems, fmt.Sprintf("invalid cadence %q", p.Cadence))
	}
	if !domain.ValidTemplateKinds[string(p.LogTemplate)] {
		problems = append(problems, fmt.Sprintf("invalid log template %q", p.LogTemplate))
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		problems = append(problems, "end date is before start date")
	}
	for i, m := range p.Milestones {
		if !domain.ValidEventCategories[string(m.Category)] {
			problems = append(problems, fmt.Sprintf("milestone %d: invalid category %q", i, m.Category))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid placement: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Create fills in the ID, timestamps and, for bounded placements without
// milestones, the default milestone set.
func (s *placementService) Create(ctx context.Context, p *domain.Placement) (err error) {
	done := s.opts.track(ctx, "create-placement", map[string]any{"title": p.Title})
	defer func() { done(err) }()

	if p.LogTemplate == "" {
		p.LogTemplate = domain.TemplateCustom
	}
	if err := validatePlacement(p); err != nil {
		return err
	}
	now := s.opts.now()
	if p.ID == "" {
		p.ID = s.opts.newID()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	if len(p.Milestones) == 0 && p.EndDate != nil {
		p.Milestones = timeline.DefaultMilestones(p.StartDate, *p.EndDate, p.Cadence)
	}
	if err := s.placements.Create(ctx, p); err != nil {
		return storeErr("creating placement", err)
	}
	return nil
}

func (s *placementService) Get(ctx context.Context, id string) (*domain.Placement, error) {
	p, err := s.placements.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("loading placement", err)
	}
	return p, nil
}

func (s *placementService) List(ctx context.Context) ([]*domain.Placement, error) {
	ps, err := s.placements.List(ctx)
	if err != nil {
		return nil, storeErr("listing placements", err)
	}
	return ps, nil
}

func (s *placementService) Import(ctx context.Context, path string) (*importer.Result, error) {
	schema, err := importer.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

// ImportFromSchema writes the placement and its enrollments in one
// transaction.
func (s *placementService) ImportFromSchema(ctx context.Context, schema *importer.PlacementImport) (res *importer.Result, err error) {
	fields := map[string]any{"title": schema.Title}
	done := s.opts.track(ctx, "import-placement", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	res, err = importer.Convert(schema, s.opts.now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["milestone_count"] = len(res.Placement.Milestones)
	fields["enrollment_count"] = len(res.Enrollments)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlacements := repository.NewSQLPlacementRepo(tx)
		txEnrollments := repository.NewSQLEnrollmentRepo(tx)

		if err := txPlacements.Create(ctx, res.Placement); err != nil {
			return fmt.Errorf("creating placement: %w", err)
		}
		for _, e := range res.Enrollments {
			if err := txEnrollments.Create(ctx, e); err != nil {
				return fmt.Errorf("enrolling %s: %w", e.StudentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

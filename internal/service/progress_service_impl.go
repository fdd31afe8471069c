package service

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
)

type progressService struct {
	placements repository.PlacementRepo
	entries    repository.LogEntryRepo
}

func NewProgressService(placements repository.PlacementRepo, entries repository.LogEntryRepo) ProgressService {
	return &progressService{placements: placements, entries: entries}
}

func (s *progressService) Summary(ctx context.Context, studentID, placementID string, today time.Time) (*app.ProgressSummary, error) {
	p, err := s.placements.GetByID(ctx, placementID)
	if err != nil {
		return nil, storeErr("loading placement", err)
	}
	entries, err := s.entries.ListByStudentPlacement(ctx, studentID, placementID)
	if err != nil {
		return nil, storeErr("loading log entries", err)
	}
	sum := summarize(p, entries, scheduler.DateOf(today))
	sum.StudentID = studentID
	return sum, nil
}

// summarize computes logbook statistics. Rejected and verified counts
// follow the supervisor axis; pending only counts submitted entries.
func summarize(p *domain.Placement, entries []*domain.LogEntry, today time.Time) *app.ProgressSummary {
	sum := &app.ProgressSummary{PlacementID: p.ID}
	for _, e := range entries {
		if e.IsDraft() {
			sum.Drafts++
		} else {
			sum.Submitted++
			if e.SupervisorStatus == domain.SupervisorPending {
				sum.Pending++
			}
		}
		switch e.SupervisorStatus {
		case domain.SupervisorVerified:
			sum.Verified++
		case domain.SupervisorRejected:
			sum.Rejected++
		}
	}

	sum.Expected = expectedEntries(p, today)
	if sum.Expected > 0 {
		pct := math.Round(float64(sum.Submitted) / float64(sum.Expected) * 100)
		sum.ProgressPct = int(math.Min(100, pct))
	}

	if p.EndDate != nil {
		left := int(scheduler.DateOf(*p.EndDate).Sub(today).Hours() / 24)
		sum.DaysRemaining = &left
		sum.Completed = left < 0
	}

	switch {
	case sum.Rejected > 0:
		sum.Health = app.HealthActionNeeded
	case sum.Pending > app.DelayedPendingThreshold:
		sum.Health = app.HealthDelayed
	default:
		sum.Health = app.HealthGood
	}
	return sum
}

// expectedEntries is the number of logs a complete logbook holds. Bounded
// placements expect one per period over the whole span; open-ended ones
// expect one per period elapsed so far.
func expectedEntries(p *domain.Placement, today time.Time) int {
	length := scheduler.CadenceLength(p.Cadence)
	if p.EndDate != nil {
		days := p.TotalDays()
		return int(math.Ceil(float64(days) / float64(length)))
	}
	if !p.Cadence.IsComposite() {
		return max(0, int(today.Sub(scheduler.DateOf(p.StartDate)).Hours()/24)+1)
	}
	return max(0, scheduler.CurrentPeriodNumber(p.StartDate, length, today))
}

package service

import (
	"context"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/timeline"
)

type timelineService struct {
	placements repository.PlacementRepo
	entries    repository.LogEntryRepo
	opts       options
}

func NewTimelineService(placements repository.PlacementRepo, entries repository.LogEntryRepo, opts ...Option) TimelineService {
	return &timelineService{placements: placements, entries: entries, opts: newOptions(opts)}
}

// BuildTimeline reads the placement and the student's entries and projects
// them. An empty studentID yields the milestone-only timeline.
func (s *timelineService) BuildTimeline(ctx context.Context, studentID, placementID string, includeLogEvents bool, today time.Time) (*app.TimelineView, error) {
	p, err := s.placements.GetByID(ctx, placementID)
	if err != nil {
		return nil, storeErr("loading placement", err)
	}
	var entries []*domain.LogEntry
	if studentID != "" {
		entries, err = s.entries.ListByStudentPlacement(ctx, studentID, placementID)
		if err != nil {
			return nil, storeErr("loading log entries", err)
		}
	}

	view := &app.TimelineView{
		Placement:        p,
		Windows:          timeline.WindowsFor(p, today),
		Entries:          entries,
		IncludeLogEvents: includeLogEvents,
	}
	view.Timeline = view.Rebuild(includeLogEvents)
	return view, nil
}

package app

import (
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/timeline"
)

// CurrentPeriod is the period a student would log into today. Daily
// placements report the date itself with Number 0.
type CurrentPeriod struct {
	PlacementID string
	Cadence     domain.Cadence
	Number      int
	Window      domain.PeriodWindow
}

// NewPeriodOutcome says how RequestNewPeriod produced its entry.
type NewPeriodOutcome string

const (
	OutcomeCreated NewPeriodOutcome = "created"
	OutcomeResumed NewPeriodOutcome = "resumed"
	// OutcomeRecovered means a concurrent create won the slot and the
	// stored entry was re-read and opened instead.
	OutcomeRecovered NewPeriodOutcome = "recovered"
)

type NewPeriodResult struct {
	Entry   *domain.LogEntry
	Window  domain.PeriodWindow
	Outcome NewPeriodOutcome
}

// TimelineView holds the inputs of a built timeline so callers can
// recompute it with a different log toggle without another read.
type TimelineView struct {
	Placement        *domain.Placement
	Windows          []domain.PeriodWindow
	Entries          []*domain.LogEntry
	IncludeLogEvents bool
	Timeline         timeline.Timeline
}

// Rebuild recomputes the timeline from the held inputs.
func (v *TimelineView) Rebuild(includeLogEvents bool) timeline.Timeline {
	return timeline.Build(v.Placement.Milestones, v.Windows, v.Entries, includeLogEvents)
}

// Inbox lists submissions that changed since the viewer's cursor.
type Inbox struct {
	PlacementID string
	Since       time.Time
	Entries     []*domain.LogEntry
}

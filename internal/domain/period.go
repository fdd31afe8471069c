package domain

import "time"

// PeriodWindow is one reporting window of a placement. Start and End are
// civil dates (midnight UTC) and both are inclusive.
type PeriodWindow struct {
	Number int
	Label  string
	Start  time.Time
	End    time.Time
}

// Contains reports whether the civil date d lies within [Start, End].
func (w PeriodWindow) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// TimelineEvent is a read-only projection item shown on the timeline.
type TimelineEvent struct {
	ID           string
	Date         time.Time
	Title        string
	Category     EventCategory
	Description  string
	IsSystem     bool
	PeriodNumber int
}

// EventFromMilestone projects a configured milestone onto the timeline.
func EventFromMilestone(m Milestone) TimelineEvent {
	return TimelineEvent{
		ID:          m.ID,
		Date:        m.Date,
		Title:       m.Title,
		Category:    m.Category,
		Description: m.Description,
		IsSystem:    m.IsSystem,
	}
}

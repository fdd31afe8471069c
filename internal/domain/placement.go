package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Milestone is a fixed, dated event configured on a placement timeline.
type Milestone struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Title       string        `json:"title"`
	Category    EventCategory `json:"category"`
	Description string        `json:"description,omitempty"`
	IsSystem    bool          `json:"is_system,omitempty"`
}

// Placement is a cohort-scoped practicum definition.
type Placement struct {
	ID          string
	Title       string
	StartDate   time.Time
	EndDate     *time.Time
	Cadence     Cadence
	LogTemplate TemplateKind
	Milestones  []Milestone

	// Rubric is stored and returned verbatim; scoring is not modelled here.
	Rubric json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDays returns the number of days between start and end (at least 1),
// or 0 when the placement has no end date.
func (p *Placement) TotalDays() int {
	if p.EndDate == nil {
		return 0
	}
	days := int(math.Ceil(p.EndDate.Sub(p.StartDate).Hours() / 24))
	return max(1, days)
}

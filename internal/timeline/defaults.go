package timeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/google/uuid"
)

const (
	supervisorReportOffsetDays = 7
	finalReportOffsetDays      = 30
)

// DefaultMilestones generates the system milestones for a bounded placement.
// All dates are moved off weekends. Weekly placements also get one
// "Log Due" event per week that ends on or before the end date.
func DefaultMilestones(start, end time.Time, cadence domain.Cadence) []domain.Milestone {
	start, end = scheduler.DateOf(start), scheduler.DateOf(end)
	sys := func(date time.Time, title string, cat domain.EventCategory, desc string) domain.Milestone {
		return domain.Milestone{
			ID:          uuid.NewString(),
			Date:        scheduler.EnsureWeekday(date),
			Title:       title,
			Category:    cat,
			Description: desc,
			IsSystem:    true,
		}
	}

	mid := start.AddDate(0, 0, int(end.Sub(start).Hours()/24)/2)
	out := []domain.Milestone{
		sys(start, "Reporting Date", domain.EventMilestone, "First day of practicum placement"),
		sys(end, "Practicum Ends", domain.EventMilestone, "Last day of practicum placement"),
		sys(mid, "Field Visit", domain.EventMeeting, "Supervisor field assessment visit"),
	}

	if cadence == domain.CadenceWeekly {
		for _, w := range scheduler.Windows(start, 7, end.AddDate(0, 0, 2)) {
			if w.End.After(end) {
				continue
			}
			out = append(out, sys(w.End,
				fmt.Sprintf("Week %d Log Due", w.Number), domain.EventLog,
				fmt.Sprintf("Log submission for Week %d", w.Number)))
		}
	}

	out = append(out,
		sys(end.AddDate(0, 0, supervisorReportOffsetDays), "Supervisor Report Due", domain.EventReport,
			"Deadline for supervisor verification and assessment"),
		sys(end.AddDate(0, 0, finalReportOffsetDays), "Final Student Report Due", domain.EventReport,
			"Deadline for final academic report submission"),
	)
	return out
}

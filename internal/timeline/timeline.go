// Package timeline merges placement milestones and log activity into an
// ordered, window-grouped sequence for display. It is a pure projection.
package timeline

import (
	"slices"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
)

type GroupKind string

const (
	GroupPre    GroupKind = "pre"
	GroupWindow GroupKind = "window"
	GroupPost   GroupKind = "post"
	// GroupAll is the single flat group returned when no windows exist.
	GroupAll GroupKind = "all"
)

// Group is one display bucket. Window is set only for GroupWindow.
type Group struct {
	Kind   GroupKind
	Label  string
	Window *domain.PeriodWindow
	Events []domain.TimelineEvent
}

type Timeline struct {
	Groups []Group
}

// Len returns the number of events across all groups.
func (t Timeline) Len() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Events)
	}
	return n
}

// Events returns all events in display order.
func (t Timeline) Events() []domain.TimelineEvent {
	out := make([]domain.TimelineEvent, 0, t.Len())
	for _, g := range t.Groups {
		out = append(out, g.Events...)
	}
	return out
}

// Build assembles the timeline. When includeLogEvents is false every event
// of category log is removed, milestones included, and windows left empty by
// that are omitted. Events dated in a gap between two windows are dropped;
// windows produced by scheduler.Windows have no gaps.
func Build(milestones []domain.Milestone, windows []domain.PeriodWindow, entries []*domain.LogEntry, includeLogEvents bool) Timeline {
	events := make([]domain.TimelineEvent, 0, len(milestones)+len(entries))
	for _, m := range milestones {
		events = append(events, domain.EventFromMilestone(m))
	}
	events = append(events, LogEvents(entries)...)

	if !includeLogEvents {
		events = slices.DeleteFunc(events, func(e domain.TimelineEvent) bool {
			return e.Category == domain.EventLog
		})
	}
	sortByDate(events)

	if len(windows) == 0 {
		if len(events) == 0 {
			return Timeline{}
		}
		return Timeline{Groups: []Group{{Kind: GroupAll, Label: "All events", Events: events}}}
	}

	first, last := windows[0], windows[len(windows)-1]
	var pre, post []domain.TimelineEvent
	perWindow := make([][]domain.TimelineEvent, len(windows))

	for _, ev := range events {
		switch {
		case ev.Date.Before(first.Start):
			pre = append(pre, ev)
		case ev.Date.After(last.End):
			post = append(post, ev)
		default:
			if i := windowIndex(windows, ev.Date); i >= 0 {
				perWindow[i] = append(perWindow[i], ev)
			}
		}
	}

	var tl Timeline
	if len(pre) > 0 {
		tl.Groups = append(tl.Groups, Group{Kind: GroupPre, Label: "Before placement", Events: pre})
	}
	for i := range windows {
		if len(perWindow[i]) == 0 {
			continue
		}
		w := windows[i]
		tl.Groups = append(tl.Groups, Group{Kind: GroupWindow, Label: w.Label, Window: &w, Events: perWindow[i]})
	}
	if len(post) > 0 {
		tl.Groups = append(tl.Groups, Group{Kind: GroupPost, Label: "After placement", Events: post})
	}
	return tl
}

func windowIndex(windows []domain.PeriodWindow, date time.Time) int {
	i, found := slices.BinarySearchFunc(windows, date, func(w domain.PeriodWindow, d time.Time) int {
		switch {
		case w.End.Before(d):
			return -1
		case w.Start.After(d):
			return 1
		}
		return 0
	})
	if !found {
		return -1
	}
	return i
}

// sortByDate orders events ascending by date. Ties keep input order, so
// milestones stay ahead of log events on the same day.
func sortByDate(events []domain.TimelineEvent) {
	slices.SortStableFunc(events, func(a, b domain.TimelineEvent) int {
		return a.Date.Compare(b.Date)
	})
}

// LogEvents projects each entry onto one log event dated at its period start
// (or log date for daily entries).
func LogEvents(entries []*domain.LogEntry) []domain.TimelineEvent {
	out := make([]domain.TimelineEvent, 0, len(entries))
	for _, e := range entries {
		title := scheduler.FormatDate(e.LogDate) + " Log"
		if e.Cadence.IsComposite() {
			title = scheduler.WindowLabel(e.Cadence, e.PeriodNumber) + " Log"
		}
		out = append(out, domain.TimelineEvent{
			ID:           "log-" + e.ID,
			Date:         e.LogDate,
			Title:        title,
			Category:     domain.EventLog,
			Description:  string(e.DisplayStatus()),
			PeriodNumber: e.PeriodNumber,
		})
	}
	return out
}

// WindowsFor returns the display windows of a placement up to today. Daily
// placements are grouped by week. When the placement has ended, windows stop
// at the one covering the final days.
func WindowsFor(p *domain.Placement, today time.Time) []domain.PeriodWindow {
	length := scheduler.CadenceLength(p.Cadence)
	if !p.Cadence.IsComposite() {
		length = scheduler.CadenceLength(domain.CadenceWeekly)
	}
	through := scheduler.DateOf(today)
	if p.EndDate != nil {
		// A window is kept while it starts before end+3 days, which catches
		// mid-week end dates.
		limit := scheduler.DateOf(*p.EndDate).AddDate(0, 0, 2)
		if limit.Before(through) {
			through = limit
		}
	}
	windows := scheduler.Windows(p.StartDate, length, through)
	if p.Cadence == domain.CadenceMonthly {
		for i := range windows {
			windows[i].Label = scheduler.WindowLabel(p.Cadence, windows[i].Number)
		}
	}
	return windows
}

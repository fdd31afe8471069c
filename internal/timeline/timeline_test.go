package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func d(s string) time.Time {
	t, err := scheduler.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func milestone(id, date, title string, cat domain.EventCategory) domain.Milestone {
	return domain.Milestone{ID: id, Date: d(date), Title: title, Category: cat}
}

func januaryWindows() []domain.PeriodWindow {
	return scheduler.Windows(d("2024-01-01"), 7, d("2024-01-31"))
}

func weeklyEntry(id string, n int) *domain.LogEntry {
	w := scheduler.PeriodWindowFor(d("2024-01-01"), 7, n)
	return domain.NewDraft(id, "s1", "p1", domain.CadenceWeekly, n, w.Start, testNow)
}

func titles(events []domain.TimelineEvent) []string {
	var out []string
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestBuild_PlacesMilestonesInWindowAndPost(t *testing.T) {
	ms := []domain.Milestone{
		milestone("m2", "2024-03-01", "Final report", domain.EventReport),
		milestone("m1", "2024-01-15", "Field visit", domain.EventMeeting),
	}
	tl := Build(ms, januaryWindows(), nil, true)

	require.Len(t, tl.Groups, 2)
	assert.Equal(t, GroupWindow, tl.Groups[0].Kind)
	assert.Equal(t, "Week 3", tl.Groups[0].Label)
	require.NotNil(t, tl.Groups[0].Window)
	assert.Equal(t, 3, tl.Groups[0].Window.Number)
	assert.Equal(t, []string{"Field visit"}, titles(tl.Groups[0].Events))

	assert.Equal(t, GroupPost, tl.Groups[1].Kind)
	assert.Equal(t, []string{"Final report"}, titles(tl.Groups[1].Events))
}

func TestBuild_PreGroup(t *testing.T) {
	ms := []domain.Milestone{milestone("m0", "2023-12-20", "Orientation", domain.EventMilestone)}
	tl := Build(ms, januaryWindows(), nil, true)
	require.Len(t, tl.Groups, 1)
	assert.Equal(t, GroupPre, tl.Groups[0].Kind)
}

func TestBuild_ToggleLogEventsOnlyRemovesLogs(t *testing.T) {
	ms := []domain.Milestone{
		milestone("m1", "2024-01-15", "Field visit", domain.EventMeeting),
		milestone("m2", "2024-01-21", "Week 3 Log Due", domain.EventLog),
		milestone("m3", "2024-03-01", "Final report", domain.EventReport),
	}
	entries := []*domain.LogEntry{weeklyEntry("e1", 1), weeklyEntry("e3", 3)}

	with := Build(ms, januaryWindows(), entries, true)
	without := Build(ms, januaryWindows(), entries, false)

	assert.Equal(t, []string{"Week 1", "Week 3", "After placement"}, groupLabels(with))
	assert.Equal(t, []string{"Week 1 Log", "Field visit", "Week 3 Log", "Week 3 Log Due", "Final report"}, titles(with.Events()))

	// Week 1 only held a log event, so it collapses.
	assert.Equal(t, []string{"Week 3", "After placement"}, groupLabels(without))
	assert.Equal(t, []string{"Field visit", "Final report"}, titles(without.Events()))

	var surviving []string
	for _, e := range with.Events() {
		if e.Category != domain.EventLog {
			surviving = append(surviving, e.Title)
		}
	}
	assert.Equal(t, surviving, titles(without.Events()), "toggle never reorders survivors")
}

func TestBuild_FlatFallback(t *testing.T) {
	ms := []domain.Milestone{
		milestone("m2", "2024-03-01", "B", domain.EventReport),
		milestone("m1", "2024-01-15", "A", domain.EventMeeting),
	}
	tl := Build(ms, nil, nil, true)
	require.Len(t, tl.Groups, 1)
	assert.Equal(t, GroupAll, tl.Groups[0].Kind)
	assert.Equal(t, []string{"A", "B"}, titles(tl.Groups[0].Events))

	assert.Empty(t, Build(nil, nil, nil, true).Groups)
}

func TestBuild_StableForSameDate(t *testing.T) {
	ms := []domain.Milestone{
		milestone("a", "2024-01-10", "first", domain.EventOther),
		milestone("b", "2024-01-10", "second", domain.EventOther),
		milestone("c", "2024-01-09", "earlier", domain.EventOther),
	}
	tl := Build(ms, januaryWindows(), nil, true)
	assert.Equal(t, []string{"earlier", "first", "second"}, titles(tl.Events()))
}

func TestBuild_Deterministic(t *testing.T) {
	ms := DefaultMilestones(d("2024-01-01"), d("2024-03-29"), domain.CadenceWeekly)
	entries := []*domain.LogEntry{weeklyEntry("e1", 1), weeklyEntry("e2", 2)}
	a := Build(ms, januaryWindows(), entries, true)
	b := Build(ms, januaryWindows(), entries, true)
	assert.Equal(t, a, b)
}

func TestBuild_WindowBoundsInclusive(t *testing.T) {
	ms := []domain.Milestone{
		milestone("a", "2024-01-08", "monday", domain.EventOther),
		milestone("b", "2024-01-14", "sunday", domain.EventOther),
	}
	tl := Build(ms, januaryWindows(), nil, true)
	require.Len(t, tl.Groups, 1)
	assert.Equal(t, "Week 2", tl.Groups[0].Label)
	assert.Len(t, tl.Groups[0].Events, 2)
}

func TestLogEvents(t *testing.T) {
	daily := domain.NewDraft("e9", "s1", "p1", domain.CadenceDaily, 0, d("2024-01-09"), testNow)
	sub := weeklyEntry("e2", 2)
	require.NoError(t, sub.Submit("tok", testNow))

	evs := LogEvents([]*domain.LogEntry{daily, sub})
	require.Len(t, evs, 2)
	assert.Equal(t, "2024-01-09 Log", evs[0].Title)
	assert.Equal(t, "draft", evs[0].Description)
	assert.Equal(t, "Week 2 Log", evs[1].Title)
	assert.Equal(t, "submitted", evs[1].Description)
	assert.Equal(t, d("2024-01-08"), evs[1].Date)
	assert.Equal(t, domain.EventLog, evs[1].Category)
	assert.Equal(t, "log-e2", evs[1].ID)
}

func TestWindowsFor(t *testing.T) {
	end := d("2024-01-17")
	p := &domain.Placement{StartDate: d("2024-01-01"), EndDate: &end, Cadence: domain.CadenceWeekly}

	ws := WindowsFor(p, d("2024-01-10"))
	assert.Len(t, ws, 2, "only windows started by today")

	ws = WindowsFor(p, d("2024-06-01"))
	assert.Len(t, ws, 3, "capped after the end date")

	p.Cadence = domain.CadenceMonthly
	ws = WindowsFor(p, d("2024-06-01"))
	require.Len(t, ws, 3)
	assert.Equal(t, "Month 3", ws[2].Label)
	assert.Equal(t, d("2024-01-21"), ws[2].End)

	p.Cadence = domain.CadenceDaily
	ws = WindowsFor(p, d("2024-01-10"))
	require.Len(t, ws, 2)
	assert.Equal(t, "Week 2", ws[1].Label)
}

func groupLabels(tl Timeline) []string {
	var out []string
	for _, g := range tl.Groups {
		out = append(out, g.Label)
	}
	return out
}

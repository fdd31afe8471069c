package timeline

import (
	"testing"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byTitle(ms []domain.Milestone) map[string]domain.Milestone {
	out := make(map[string]domain.Milestone, len(ms))
	for _, m := range ms {
		out[m.Title] = m
	}
	return out
}

func TestDefaultMilestones_Weekly(t *testing.T) {
	// Monday 2024-01-01 to Wednesday 2024-01-24.
	ms := DefaultMilestones(d("2024-01-01"), d("2024-01-24"), domain.CadenceWeekly)
	got := byTitle(ms)

	assert.Equal(t, d("2024-01-01"), got["Reporting Date"].Date)
	assert.Equal(t, d("2024-01-24"), got["Practicum Ends"].Date)
	assert.Equal(t, d("2024-01-12"), got["Field Visit"].Date)
	assert.Equal(t, domain.EventMeeting, got["Field Visit"].Category)

	// Week ends fall on Sunday and move to Monday; week 4 ends after the end date.
	require.Contains(t, got, "Week 3 Log Due")
	assert.Equal(t, d("2024-01-22"), got["Week 3 Log Due"].Date)
	assert.Equal(t, domain.EventLog, got["Week 3 Log Due"].Category)
	assert.NotContains(t, got, "Week 4 Log Due")

	// 2024-01-31 is a Wednesday; +30 lands on Friday 2024-02-23.
	assert.Equal(t, d("2024-01-31"), got["Supervisor Report Due"].Date)
	assert.Equal(t, d("2024-02-23"), got["Final Student Report Due"].Date)

	for _, m := range ms {
		assert.True(t, m.IsSystem)
		assert.NotEmpty(t, m.ID)
	}
}

func TestDefaultMilestones_WeekendsMoved(t *testing.T) {
	// Saturday start, Sunday end.
	ms := byTitle(DefaultMilestones(d("2024-01-06"), d("2024-02-04"), domain.CadenceMonthly))
	assert.Equal(t, d("2024-01-05"), ms["Reporting Date"].Date)
	assert.Equal(t, d("2024-02-05"), ms["Practicum Ends"].Date)
}

func TestDefaultMilestones_NoLogDueForMonthly(t *testing.T) {
	ms := DefaultMilestones(d("2024-01-01"), d("2024-03-01"), domain.CadenceMonthly)
	for _, m := range ms {
		assert.NotEqual(t, domain.EventLog, m.Category, m.Title)
	}
	assert.Len(t, ms, 5)
}

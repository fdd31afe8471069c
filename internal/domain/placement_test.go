package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDays(t *testing.T) {
	p := &Placement{StartDate: day(2024, 1, 1)}
	assert.Equal(t, 0, p.TotalDays(), "open-ended placement")

	end := day(2024, 3, 1)
	p.EndDate = &end
	assert.Equal(t, 60, p.TotalDays())

	p.EndDate = &p.StartDate
	assert.Equal(t, 1, p.TotalDays())
}

func TestEnrollment_ExpectsActivityOn(t *testing.T) {
	e := &Enrollment{}
	assert.True(t, e.ExpectsActivityOn(day(2024, 1, 6)))

	e.ScheduleDays = []string{"Monday", "wednesday"}
	assert.True(t, e.ExpectsActivityOn(day(2024, 1, 1)))
	assert.True(t, e.ExpectsActivityOn(day(2024, 1, 3)))
	assert.False(t, e.ExpectsActivityOn(day(2024, 1, 2)))
}

func TestEnrollment_IsApproved(t *testing.T) {
	var nilEnrollment *Enrollment
	assert.False(t, nilEnrollment.IsApproved())
	assert.True(t, (&Enrollment{Status: EnrollmentApproved}).IsApproved())
	assert.False(t, (&Enrollment{Status: EnrollmentPending}).IsApproved())
}

func TestPeriodWindow_Contains(t *testing.T) {
	w := PeriodWindow{Start: day(2024, 1, 8), End: day(2024, 1, 14)}
	assert.True(t, w.Contains(day(2024, 1, 8)))
	assert.True(t, w.Contains(day(2024, 1, 14)))
	assert.False(t, w.Contains(day(2024, 1, 15)))
	assert.False(t, w.Contains(day(2024, 1, 7)))
}

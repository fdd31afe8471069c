package domain

import (
	"strings"
	"time"
)

// SupervisorContact identifies the workplace supervisor who verifies logs.
type SupervisorContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Enrollment binds one student to one placement.
type Enrollment struct {
	ID          string
	StudentID   string
	PlacementID string
	Status      EnrollmentStatus

	// ScheduleDays lists the weekdays ("monday".."sunday") the student is
	// expected to log. Advisory only; never enforced.
	ScheduleDays []string
	Supervisor   SupervisorContact

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Enrollment) IsApproved() bool {
	return e != nil && e.Status == EnrollmentApproved
}

// ExpectsActivityOn reports whether d is one of the scheduled weekdays.
// An empty schedule expects activity on every day.
func (e *Enrollment) ExpectsActivityOn(d time.Time) bool {
	if len(e.ScheduleDays) == 0 {
		return true
	}
	day := strings.ToLower(d.Weekday().String())
	for _, s := range e.ScheduleDays {
		if strings.ToLower(s) == day {
			return true
		}
	}
	return false
}

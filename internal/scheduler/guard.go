package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
)

// AdmissionKind says whether the caller should persist a new entry or open
// an existing one.
type AdmissionKind string

const (
	AdmitCreate AdmissionKind = "create"
	AdmitResume AdmissionKind = "resume"
)

// Admission is the outcome of a successful admission check. For AdmitCreate,
// Entry is an unsaved draft without an ID.
type Admission struct {
	Kind   AdmissionKind
	Entry  *domain.LogEntry
	Window domain.PeriodWindow
}

// RequestNewPeriod decides whether the student may open a log for the
// current period. Only the current period is ever admitted.
func RequestNewPeriod(
	p *domain.Placement,
	enrollment *domain.Enrollment,
	existing []*domain.LogEntry,
	today time.Time,
	now time.Time,
) (Admission, error) {
	if !enrollment.IsApproved() {
		return Admission{}, domain.ErrEnrollmentNotApproved
	}
	today = DateOf(today)
	own := ownedBy(existing, enrollment.StudentID, p.ID)

	if !p.Cadence.IsComposite() {
		return AdmitDailyDate(p, enrollment.StudentID, own, today, now)
	}

	length := CadenceLength(p.Cadence)
	n := CurrentPeriodNumber(p.StartDate, length, today)
	if n < 1 {
		return Admission{}, fmt.Errorf("starts %s: %w", FormatDate(p.StartDate), domain.ErrPeriodNotStarted)
	}
	w := WindowFor(p.Cadence, p.StartDate, n)

	for _, e := range own {
		if e.PeriodNumber == n {
			return Admission{Kind: AdmitResume, Entry: e, Window: w}, nil
		}
	}

	draft := domain.NewDraft("", enrollment.StudentID, p.ID, p.Cadence, n, w.Start, now)
	return Admission{Kind: AdmitCreate, Entry: draft, Window: w}, nil
}

// AdmitDailyDate admits a daily entry for an explicit date. Back-dated and
// future dates are allowed; only a second entry for the same date is
// rejected.
func AdmitDailyDate(
	p *domain.Placement,
	studentID string,
	existing []*domain.LogEntry,
	date time.Time,
	now time.Time,
) (Admission, error) {
	date = DateOf(date)
	for _, e := range ownedBy(existing, studentID, p.ID) {
		if e.LogDate.Equal(date) {
			return Admission{}, fmt.Errorf("%s: %w", FormatDate(date), domain.ErrDuplicatePeriod)
		}
	}
	draft := domain.NewDraft("", studentID, p.ID, domain.CadenceDaily, 0, date, now)
	return Admission{
		Kind:   AdmitCreate,
		Entry:  draft,
		Window: domain.PeriodWindow{Label: FormatDate(date), Start: date, End: date},
	}, nil
}

func ownedBy(entries []*domain.LogEntry, studentID, placementID string) []*domain.LogEntry {
	var out []*domain.LogEntry
	for _, e := range entries {
		if e.StudentID == studentID && e.PlacementID == placementID {
			out = append(out, e)
		}
	}
	return out
}

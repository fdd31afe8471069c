package domain

import (
	"fmt"
	"maps"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// civilDate truncates t to its calendar date at midnight UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayEntry is one per-day sub-entry of a composite (weekly/monthly) log.
type DayEntry struct {
	Date   time.Time      `json:"date"`
	Fields map[string]any `json:"fields"`
}

// LogEntry is a student's record for one reporting period.
//
// Daily entries are keyed by LogDate and carry a flat Fields record.
// Weekly/monthly entries are keyed by PeriodNumber, LogDate is the period
// start, and the payload is the Days list plus a Reflection.
type LogEntry struct {
	ID           string
	StudentID    string
	PlacementID  string
	Cadence      Cadence
	PeriodNumber int
	LogDate      time.Time

	Fields     map[string]any
	Days       []DayEntry
	Reflection string

	SubmissionStatus SubmissionStatus
	SupervisorStatus SupervisorStatus
	InstructorStatus InstructorStatus

	SupervisorComment    string
	SupervisorVerifiedAt *time.Time
	VerificationToken    string
	SubmittedAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraft returns a fresh draft entry with all three status axes at their
// initial values.
func NewDraft(id, studentID, placementID string, cadence Cadence, periodNumber int, logDate, now time.Time) *LogEntry {
	e := &LogEntry{
		ID:               id,
		StudentID:        studentID,
		PlacementID:      placementID,
		Cadence:          cadence,
		PeriodNumber:     periodNumber,
		LogDate:          logDate,
		SubmissionStatus: SubmissionDraft,
		SupervisorStatus: SupervisorPending,
		InstructorStatus: InstructorUnread,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if cadence.IsComposite() {
		e.Days = []DayEntry{}
	} else {
		e.Fields = map[string]any{}
	}
	return e
}

// PeriodKey returns the uniqueness key within (student, placement):
// the ISO date for daily entries, "p<n>" for composite entries.
func PeriodKey(cadence Cadence, periodNumber int, logDate time.Time) string {
	if cadence.IsComposite() {
		return "p" + strconv.Itoa(periodNumber)
	}
	return logDate.Format(dateLayout)
}

func (e *LogEntry) PeriodKey() string {
	return PeriodKey(e.Cadence, e.PeriodNumber, e.LogDate)
}

func (e *LogEntry) IsDraft() bool {
	return e.SubmissionStatus == SubmissionDraft
}

// Window returns the period window the entry covers. Daily entries cover
// their single day.
func (e *LogEntry) Window() PeriodWindow {
	return PeriodWindow{
		Number: e.PeriodNumber,
		Start:  e.LogDate,
		End:    e.LogDate.AddDate(0, 0, e.Cadence.LengthDays()-1),
	}
}

// DisplayStatus derives the badge: draft first, then a supervisor verdict,
// otherwise submitted.
func (e *LogEntry) DisplayStatus() DisplayStatus {
	if e.SubmissionStatus == SubmissionDraft {
		return DisplayDraft
	}
	switch e.SupervisorStatus {
	case SupervisorVerified:
		return DisplayVerified
	case SupervisorRejected:
		return DisplayRejected
	}
	return DisplaySubmitted
}

// Matches reports whether the entry is selected by the list filter.
func (e *LogEntry) Matches(f LogFilter) bool {
	switch f {
	case FilterDraft:
		return e.DisplayStatus() == DisplayDraft
	case FilterPending:
		return e.DisplayStatus() == DisplaySubmitted
	case FilterVerified:
		return e.DisplayStatus() == DisplayVerified
	case FilterRejected:
		return e.DisplayStatus() == DisplayRejected
	default:
		return true
	}
}

// Summary returns a one-line description for list views.
func (e *LogEntry) Summary() string {
	notes, _ := e.Fields["notes"].(string)
	return CoalesceStr(e.Reflection, notes, "No summary provided.")
}

func (e *LogEntry) requireDraft(action string) error {
	if !e.IsDraft() {
		return fmt.Errorf("cannot %s: %w", action, ErrIllegalMutation)
	}
	return nil
}

func (e *LogEntry) requireComposite(action string) error {
	if !e.Cadence.IsComposite() {
		return fmt.Errorf("cannot %s on a %s entry", action, e.Cadence)
	}
	return nil
}

// UpsertDay replaces the sub-entry for date, or appends one. The entry is
// left untouched when any precondition fails.
func (e *LogEntry) UpsertDay(date time.Time, fields map[string]any, now time.Time) error {
	if err := e.requireComposite("add a day"); err != nil {
		return err
	}
	if err := e.requireDraft("edit day"); err != nil {
		return err
	}
	date = civilDate(date)
	w := e.Window()
	if !w.Contains(date) {
		return fmt.Errorf("%s not in %s..%s: %w",
			date.Format(dateLayout), w.Start.Format(dateLayout), w.End.Format(dateLayout), ErrInvalidDayDate)
	}

	day := DayEntry{Date: date, Fields: maps.Clone(fields)}
	if day.Fields == nil {
		day.Fields = map[string]any{}
	}
	for i := range e.Days {
		if e.Days[i].Date.Equal(date) {
			e.Days[i] = day
			e.UpdatedAt = now
			return nil
		}
	}
	e.Days = append(e.Days, day)
	e.UpdatedAt = now
	return nil
}

// RemoveDay drops the sub-entry for date. Removing a day that is not
// present is a no-op.
func (e *LogEntry) RemoveDay(date time.Time, now time.Time) error {
	if err := e.requireComposite("remove a day"); err != nil {
		return err
	}
	if err := e.requireDraft("remove day"); err != nil {
		return err
	}
	date = civilDate(date)
	for i := range e.Days {
		if e.Days[i].Date.Equal(date) {
			e.Days = append(e.Days[:i], e.Days[i+1:]...)
			e.UpdatedAt = now
			return nil
		}
	}
	return nil
}

// Day returns the sub-entry for date, if any.
func (e *LogEntry) Day(date time.Time) (DayEntry, bool) {
	date = civilDate(date)
	for _, d := range e.Days {
		if d.Date.Equal(date) {
			return d, true
		}
	}
	return DayEntry{}, false
}

func (e *LogEntry) SetReflection(text string, now time.Time) error {
	if err := e.requireComposite("set reflection"); err != nil {
		return err
	}
	if err := e.requireDraft("set reflection"); err != nil {
		return err
	}
	e.Reflection = text
	e.UpdatedAt = now
	return nil
}

// SetFields replaces the flat payload of a daily entry.
func (e *LogEntry) SetFields(fields map[string]any, now time.Time) error {
	if e.Cadence.IsComposite() {
		return fmt.Errorf("cannot set fields on a %s entry, edit its days instead", e.Cadence)
	}
	if err := e.requireDraft("edit fields"); err != nil {
		return err
	}
	e.Fields = maps.Clone(fields)
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.UpdatedAt = now
	return nil
}

// Submit moves a draft to submitted and resets the supervisor and instructor
// axes in a single step. token becomes the supervisor verification token.
func (e *LogEntry) Submit(token string, now time.Time) error {
	if err := e.requireDraft("submit"); err != nil {
		return err
	}
	submitted := now
	e.SubmissionStatus, e.SupervisorStatus, e.InstructorStatus = SubmissionSubmitted, SupervisorPending, InstructorUnread
	e.VerificationToken = token
	e.SubmittedAt = &submitted
	e.UpdatedAt = now
	return nil
}

// CanDelete reports whether the entry may be physically removed.
func (e *LogEntry) CanDelete() error {
	return e.requireDraft("delete")
}

// Verify records the supervisor verdict on a submitted entry.
func (e *LogEntry) Verify(decision SupervisorStatus, comment string, now time.Time) error {
	if !decision.IsTerminal() {
		return fmt.Errorf("supervisor decision %q: %w", decision, ErrIllegalTransition)
	}
	if e.SubmissionStatus != SubmissionSubmitted {
		return fmt.Errorf("cannot review a draft: %w", ErrIllegalTransition)
	}
	if e.SupervisorStatus != SupervisorPending {
		return fmt.Errorf("entry already %s: %w", e.SupervisorStatus, ErrIllegalTransition)
	}
	verifiedAt := now
	e.SupervisorStatus = decision
	e.SupervisorComment = comment
	e.SupervisorVerifiedAt = &verifiedAt
	e.UpdatedAt = now
	return nil
}

// MarkRead records that the instructor has seen the latest submission.
func (e *LogEntry) MarkRead(now time.Time) error {
	if e.SubmissionStatus != SubmissionSubmitted {
		return fmt.Errorf("cannot mark a draft as read: %w", ErrIllegalTransition)
	}
	if e.InstructorStatus == InstructorRead {
		return nil
	}
	e.InstructorStatus = InstructorRead
	e.UpdatedAt = now
	return nil
}

// Reopen returns a rejected submission to draft so the student can revise
// and resubmit it. Verified entries are final.
func (e *LogEntry) Reopen(now time.Time) error {
	if e.SubmissionStatus != SubmissionSubmitted || e.SupervisorStatus != SupervisorRejected {
		return fmt.Errorf("only rejected submissions can be reopened: %w", ErrIllegalTransition)
	}
	e.SubmissionStatus = SubmissionDraft
	e.VerificationToken = ""
	e.UpdatedAt = now
	return nil
}

// Clone returns a deep copy, used to apply a mutation locally before it is
// confirmed by the datastore.
func (e *LogEntry) Clone() *LogEntry {
	c := *e
	c.Fields = maps.Clone(e.Fields)
	if e.Days != nil {
		c.Days = make([]DayEntry, len(e.Days))
		for i, d := range e.Days {
			c.Days[i] = DayEntry{Date: d.Date, Fields: maps.Clone(d.Fields)}
		}
	}
	if e.SupervisorVerifiedAt != nil {
		t := *e.SupervisorVerifiedAt
		c.SupervisorVerifiedAt = &t
	}
	if e.SubmittedAt != nil {
		t := *e.SubmittedAt
		c.SubmittedAt = &t
	}
	return &c
}

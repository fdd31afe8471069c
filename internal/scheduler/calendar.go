package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
)

// DateFormat is the layout of civil dates everywhere in fieldlog.
const DateFormat = "2006-01-02"

// DateOf truncates t to its civil date, represented at midnight UTC.
// The wall-clock date of t in its own location is kept.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Today returns the civil date of now as observed in loc.
func Today(loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// LoadLocation resolves an IANA timezone name. Empty or "Local" means the
// system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// AlignToWeekStart returns the Monday on or before d. Weeks run Monday to
// Sunday, so a Sunday maps back six days.
func AlignToWeekStart(d time.Time) time.Time {
	d = DateOf(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// CadenceLength returns the period length in days for a cadence.
func CadenceLength(c domain.Cadence) int {
	return c.LengthDays()
}

func daysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CurrentPeriodNumber returns the 1-based period index containing today.
// A result below 1 means the placement has not started yet.
func CurrentPeriodNumber(start time.Time, cadenceLengthDays int, today time.Time) int {
	if cadenceLengthDays < 1 {
		cadenceLengthDays = 1
	}
	diff := daysBetween(AlignToWeekStart(start), AlignToWeekStart(today))
	return floorDiv(diff, cadenceLengthDays) + 1
}

// WindowLabel names period n of cadence c for display.
func WindowLabel(c domain.Cadence, n int) string {
	switch c {
	case domain.CadenceWeekly:
		return fmt.Sprintf("Week %d", n)
	case domain.CadenceMonthly:
		return fmt.Sprintf("Month %d", n)
	case domain.CadenceDaily:
		return fmt.Sprintf("Day %d", n)
	}
	return labelFor(c.LengthDays(), n)
}

func labelFor(length, n int) string {
	switch length {
	case 7:
		return fmt.Sprintf("Week %d", n)
	case 1:
		return fmt.Sprintf("Day %d", n)
	default:
		return fmt.Sprintf("Period %d", n)
	}
}

// PeriodWindowFor returns the inclusive window of period n.
func PeriodWindowFor(start time.Time, cadenceLengthDays, n int) domain.PeriodWindow {
	ws := AlignToWeekStart(start).AddDate(0, 0, (n-1)*cadenceLengthDays)
	return domain.PeriodWindow{
		Number: n,
		Label:  labelFor(cadenceLengthDays, n),
		Start:  ws,
		End:    ws.AddDate(0, 0, cadenceLengthDays-1),
	}
}

// WindowFor returns period n of a placement with cadence c, labelled for c.
func WindowFor(c domain.Cadence, start time.Time, n int) domain.PeriodWindow {
	w := PeriodWindowFor(start, CadenceLength(c), n)
	w.Label = WindowLabel(c, n)
	return w
}

// Windows returns periods 1..n where every window starts on or before
// through. Nil when through precedes the first window.
func Windows(start time.Time, cadenceLengthDays int, through time.Time) []domain.PeriodWindow {
	if cadenceLengthDays < 1 {
		return nil
	}
	last := floorDiv(daysBetween(AlignToWeekStart(start), through), cadenceLengthDays) + 1
	if last < 1 {
		return nil
	}
	windows := make([]domain.PeriodWindow, 0, last)
	for n := 1; n <= last; n++ {
		windows = append(windows, PeriodWindowFor(start, cadenceLengthDays, n))
	}
	return windows
}

// EnsureWeekday moves weekend dates onto the nearest working day:
// Saturday back to Friday, Sunday forward to Monday.
func EnsureWeekday(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

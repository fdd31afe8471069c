package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAlignToWeekStart(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-01-01", "2024-01-01"}, // Monday
		{"2024-01-03", "2024-01-01"},
		{"2024-01-07", "2024-01-01"}, // Sunday belongs to the same week
		{"2024-01-08", "2024-01-08"},
		{"2024-03-02", "2024-02-26"}, // across a leap day
	}
	for _, tc := range cases {
		assert.Equal(t, d(tc.want), AlignToWeekStart(d(tc.in)), tc.in)
	}
}

func TestAlignToWeekStart_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := d("2020-01-01")
	for trial := 0; trial < 500; trial++ {
		x := base.AddDate(0, 0, rng.Intn(3000))
		once := AlignToWeekStart(x)
		assert.Equal(t, once, AlignToWeekStart(once), "date=%s", FormatDate(x))
		assert.Equal(t, time.Monday, once.Weekday())
		assert.False(t, once.After(x))
	}
}

func TestAlignToWeekStart_DropsClock(t *testing.T) {
	in := time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, d("2024-01-01"), AlignToWeekStart(in))
}

func TestCurrentPeriodNumber_Weekly(t *testing.T) {
	start := d("2024-01-01")
	assert.Equal(t, 1, CurrentPeriodNumber(start, 7, d("2024-01-01")))
	assert.Equal(t, 1, CurrentPeriodNumber(start, 7, d("2024-01-07")))
	assert.Equal(t, 2, CurrentPeriodNumber(start, 7, d("2024-01-08")))
	assert.Equal(t, 0, CurrentPeriodNumber(start, 7, d("2023-12-31")))
	assert.Equal(t, -1, CurrentPeriodNumber(start, 7, d("2023-12-24")))
}

func TestCurrentPeriodNumber_MidweekStart(t *testing.T) {
	// Thursday start still aligns period 1 to that week's Monday.
	start := d("2024-01-04")
	assert.Equal(t, 1, CurrentPeriodNumber(start, 7, d("2024-01-01")))
	assert.Equal(t, 2, CurrentPeriodNumber(start, 7, d("2024-01-08")))
}

func TestCurrentPeriodNumber_Monthly(t *testing.T) {
	start := d("2024-01-01")
	length := CadenceLength(domain.CadenceMonthly)
	assert.Equal(t, 7, length)
	assert.Equal(t, 1, CurrentPeriodNumber(start, length, d("2024-01-07")))
	assert.Equal(t, 3, CurrentPeriodNumber(start, length, d("2024-01-15")))
	assert.Equal(t, 0, CurrentPeriodNumber(start, length, d("2023-12-31")))
}

func TestWindowFor_LabelsByCadence(t *testing.T) {
	start := d("2024-01-01")
	m := WindowFor(domain.CadenceMonthly, start, 3)
	assert.Equal(t, "Month 3", m.Label)
	assert.Equal(t, d("2024-01-15"), m.Start)
	assert.Equal(t, d("2024-01-21"), m.End)

	w := WindowFor(domain.CadenceWeekly, start, 3)
	assert.Equal(t, "Week 3", w.Label)
	assert.Equal(t, m.Start, w.Start)
	assert.Equal(t, m.End, w.End)
}

func TestPeriodWindowFor_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := d("2022-06-01")
	for trial := 0; trial < 200; trial++ {
		start := base.AddDate(0, 0, rng.Intn(800))
		length := []int{1, 7, 28}[rng.Intn(3)]
		prev := PeriodWindowFor(start, length, 1)
		assert.Equal(t, AlignToWeekStart(start), prev.Start)
		for n := 2; n <= 12; n++ {
			w := PeriodWindowFor(start, length, n)
			assert.Equal(t, prev.Start.AddDate(0, 0, length), w.Start)
			assert.Equal(t, prev.End.AddDate(0, 0, 1), w.Start, "no gap or overlap")
			assert.Equal(t, w.Start.AddDate(0, 0, length-1), w.End)
			prev = w
		}
	}
}

func TestPeriodWindowFor_ContainsCurrentDay(t *testing.T) {
	start := d("2024-01-03")
	for off := 0; off < 120; off++ {
		today := start.AddDate(0, 0, off)
		n := CurrentPeriodNumber(start, 7, today)
		assert.True(t, PeriodWindowFor(start, 7, n).Contains(today), FormatDate(today))
	}
}

func TestWindows(t *testing.T) {
	ws := Windows(d("2024-01-01"), 7, d("2024-01-22"))
	require.Len(t, ws, 4)
	assert.Equal(t, "Week 1", ws[0].Label)
	assert.Equal(t, d("2024-01-22"), ws[3].Start)

	assert.Nil(t, Windows(d("2024-01-01"), 7, d("2023-12-31")))
}

func TestWindows_Daily(t *testing.T) {
	ws := Windows(d("2024-01-03"), 1, d("2024-01-03"))
	require.Len(t, ws, 3, "daily windows start at the aligned Monday")
	assert.Equal(t, "Day 3", ws[2].Label)
	assert.Equal(t, d("2024-01-03"), ws[2].Start)
}

func TestWindowLabel(t *testing.T) {
	assert.Equal(t, "Week 3", WindowLabel(domain.CadenceWeekly, 3))
	assert.Equal(t, "Month 2", WindowLabel(domain.CadenceMonthly, 2))
	assert.Equal(t, "Day 5", WindowLabel(domain.CadenceDaily, 5))
}

func TestEnsureWeekday(t *testing.T) {
	assert.Equal(t, d("2024-01-05"), EnsureWeekday(d("2024-01-06")))
	assert.Equal(t, d("2024-01-08"), EnsureWeekday(d("2024-01-07")))
	assert.Equal(t, d("2024-01-03"), EnsureWeekday(d("2024-01-03")))
}

func TestToday_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	now := time.Date(2024, 1, 7, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, d("2024-01-08"), Today(loc, now))
	assert.Equal(t, d("2024-01-07"), Today(nil, now))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, d("2024-02-29"), got)

	_, err = ParseDate("29/02/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
)

// PeriodLabel names the period an entry covers.
func PeriodLabel(e *domain.LogEntry) string {
	if !e.Cadence.IsComposite() {
		return e.LogDate.Format("2006-01-02")
	}
	return scheduler.WindowLabel(e.Cadence, e.PeriodNumber)
}

func FormatLogList(entries []*domain.LogEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		w := e.Window()
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(PeriodLabel(e)),
			fmt.Sprintf("%s..%s", w.Start.Format("01-02"), w.End.Format("01-02")),
			StatusBadge(e.DisplayStatus()),
			truncate(e.Summary(), 40),
		})
	}
	return RenderTable([]string{"ID", "PERIOD", "WINDOW", "STATUS", "SUMMARY"}, rows)
}

// FormatLogEntry renders a single entry with its payload.
func FormatLogEntry(e *domain.LogEntry, loc *time.Location) string {
	var b strings.Builder
	pairs := [][2]string{
		{"ID", e.ID},
		{"Student", e.StudentID},
		{"Status", StatusBadge(e.DisplayStatus())},
		{"Submitted", Timestamp(e.SubmittedAt, loc)},
	}
	if e.InstructorStatus == domain.InstructorRead {
		pairs = append(pairs, [2]string{"Instructor", StyleGreen.Render("read")})
	}
	if e.SupervisorComment != "" {
		pairs = append(pairs, [2]string{"Supervisor", e.SupervisorComment})
	}
	b.WriteString(KeyValues(pairs))

	if e.Cadence.IsComposite() {
		days := append([]domain.DayEntry(nil), e.Days...)
		sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
		for _, d := range days {
			b.WriteString("\n\n" + Bold(Date(d.Date)) + "\n" + formatFields(d.Fields))
		}
		if len(days) == 0 {
			b.WriteString("\n\n" + Dim("No days logged yet."))
		}
		if e.Reflection != "" {
			b.WriteString("\n\n" + Header("Reflection") + "\n" + e.Reflection)
		}
	} else if len(e.Fields) > 0 {
		b.WriteString("\n\n" + formatFields(e.Fields))
	}
	return RenderBox(PeriodLabel(e), b.String())
}

func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, fmt.Sprint(fields[k])})
	}
	return KeyValues(pairs)
}

func FormatCurrentPeriod(cur *app.CurrentPeriod) string {
	if cur.Number == 0 {
		return fmt.Sprintf("Today is %s (daily log)", Bold(cur.Window.Label))
	}
	return fmt.Sprintf("%s  %s - %s",
		Bold(cur.Window.Label), Date(cur.Window.Start), Date(cur.Window.End))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

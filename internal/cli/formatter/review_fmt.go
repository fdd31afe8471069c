package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
)

// FormatInbox lists submissions with full IDs so reviewers can act on them.
func FormatInbox(in *app.Inbox, loc *time.Location) string {
	if len(in.Entries) == 0 {
		return Dim("No new submissions.")
	}
	rows := make([][]string, 0, len(in.Entries))
	for _, e := range in.Entries {
		rows = append(rows, []string{
			e.ID,
			e.StudentID,
			Bold(PeriodLabel(e)),
			StatusBadge(e.DisplayStatus()),
			string(e.InstructorStatus),
			Timestamp(&e.UpdatedAt, loc),
		})
	}
	header := fmt.Sprintf("%d new since %s", len(in.Entries), sinceLabel(in.Since, loc))
	return Dim(header) + "\n" + RenderTable([]string{"ID", "STUDENT", "PERIOD", "STATUS", "READ", "UPDATED"}, rows)
}

func sinceLabel(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "the beginning"
	}
	return Timestamp(&t, loc)
}

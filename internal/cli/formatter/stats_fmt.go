package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/fieldlog/internal/app"
)

func FormatSummary(s *app.ProgressSummary) string {
	remaining := "open-ended"
	switch {
	case s.Completed:
		remaining = StyleDim.Render("placement ended")
	case s.DaysRemaining != nil:
		remaining = strconv.Itoa(*s.DaysRemaining) + " days"
	}
	body := KeyValues([][2]string{
		{"Health", HealthIndicator(s.Health)},
		{"Progress", RenderProgress(s.ProgressPct, 20)},
		{"Submitted", fmt.Sprintf("%d of %d expected", s.Submitted, s.Expected)},
		{"Verified", StyleGreen.Render(strconv.Itoa(s.Verified))},
		{"Awaiting", StyleYellow.Render(strconv.Itoa(s.Pending))},
		{"Rejected", StyleRed.Render(strconv.Itoa(s.Rejected))},
		{"Drafts", strconv.Itoa(s.Drafts)},
		{"Remaining", remaining},
	})
	return RenderBox("Progress · "+s.StudentID, body)
}

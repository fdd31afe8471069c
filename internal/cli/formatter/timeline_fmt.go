package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fieldlog/internal/timeline"
)

// FormatTimeline renders the grouped timeline. The window containing today
// is marked.
func FormatTimeline(tl timeline.Timeline, today time.Time) string {
	if len(tl.Groups) == 0 {
		return Dim("Nothing on the timeline yet.")
	}
	var b strings.Builder
	for i, g := range tl.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		title := g.Label
		if g.Window != nil {
			title = fmt.Sprintf("%s  %s", g.Label,
				Dim(g.Window.Start.Format("02 Jan")+" - "+g.Window.End.Format("02 Jan")))
			if g.Window.Contains(today) {
				title += "  " + StyleGreen.Render("◀ current")
			}
		}
		b.WriteString(StyleHeader.Render(title) + "\n")
		for _, ev := range g.Events {
			line := fmt.Sprintf("  %s  %s", ev.Date.Format("2006-01-02"), CategoryStyle(ev.Category).Render(ev.Title))
			if ev.Description != "" {
				line += "  " + Dim(ev.Description)
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

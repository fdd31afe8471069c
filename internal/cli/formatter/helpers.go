package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID shortens an ID to its first 8 characters, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Date formats a civil date; the zero time renders as "--".
func Date(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Mon 2 Jan 2006")
}

// Timestamp formats an instant in loc.
func Timestamp(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "--"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

// RelativeDays describes date relative to today in whole days.
func RelativeDays(date, today time.Time) string {
	days := int(date.Sub(today).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0:
		return fmt.Sprintf("In %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// KeyValues renders aligned "label  value" lines.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p[0]))
		lines = append(lines, StyleDim.Render(p[0])+pad+"  "+p[1])
	}
	return strings.Join(lines, "\n")
}

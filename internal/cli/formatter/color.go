package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SetColorEnabled switches styled output on or off for the whole process.
// Output piped to a file or another program should be plain.
func SetColorEnabled(on bool) {
	if on {
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StatusBadge renders the display status of a log entry.
func StatusBadge(s domain.DisplayStatus) string {
	switch s {
	case domain.DisplayDraft:
		return StyleBlue.Render("○ Draft")
	case domain.DisplaySubmitted:
		return StyleYellow.Render("● Submitted")
	case domain.DisplayVerified:
		return StyleGreen.Render("✔ Verified")
	case domain.DisplayRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(s))
	}
}

// HealthIndicator returns a colored indicator such as "● GOOD".
func HealthIndicator(h app.Health) string {
	switch h {
	case app.HealthGood:
		return StyleGreen.Render("● GOOD")
	case app.HealthDelayed:
		return StyleYellow.Render("● DELAYED")
	case app.HealthActionNeeded:
		return StyleRed.Render("● ACTION NEEDED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// CategoryStyle colors timeline events by category.
func CategoryStyle(c domain.EventCategory) lipgloss.Style {
	switch c {
	case domain.EventDeadline, domain.EventReport:
		return StyleRed
	case domain.EventMeeting:
		return StylePurple
	case domain.EventLog:
		return StyleBlue
	case domain.EventMilestone:
		return StyleYellow
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

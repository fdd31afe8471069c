package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/domain"
)

func FormatPlacementList(ps []*domain.Placement) string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		end := "open"
		if p.EndDate != nil {
			end = p.EndDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			string(p.Cadence),
			p.StartDate.Format("2006-01-02"),
			end,
			string(p.LogTemplate),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "CADENCE", "START", "END", "TEMPLATE"}, rows)
}

// FormatPlacement renders the placement card with its milestones and
// enrollments.
func FormatPlacement(p *domain.Placement, enrollments []*domain.Enrollment) string {
	end := "open-ended"
	if p.EndDate != nil {
		end = Date(*p.EndDate)
	}
	var b strings.Builder
	b.WriteString(KeyValues([][2]string{
		{"ID", p.ID},
		{"Cadence", string(p.Cadence)},
		{"Template", string(p.LogTemplate)},
		{"Starts", Date(p.StartDate)},
		{"Ends", end},
	}))

	if len(p.Milestones) > 0 {
		b.WriteString("\n\n" + Header("Milestones") + "\n")
		for _, m := range p.Milestones {
			fmt.Fprintf(&b, "%s  %s %s\n",
				m.Date.Format("2006-01-02"),
				CategoryStyle(m.Category).Render(m.Title),
				Dim("("+string(m.Category)+")"))
		}
	}

	if len(enrollments) > 0 {
		b.WriteString("\n" + Header("Enrollments") + "\n")
		rows := make([][]string, 0, len(enrollments))
		for _, e := range enrollments {
			rows = append(rows, []string{
				e.StudentID,
				enrollmentPill(e.Status),
				strings.Join(e.ScheduleDays, ","),
				e.Supervisor.Name,
			})
		}
		b.WriteString(RenderTable([]string{"STUDENT", "STATUS", "DAYS", "SUPERVISOR"}, rows))
	}
	return RenderBox(p.Title, strings.TrimRight(b.String(), "\n"))
}

func enrollmentPill(s domain.EnrollmentStatus) string {
	switch s {
	case domain.EnrollmentApproved:
		return StyleGreen.Render("● approved")
	case domain.EnrollmentRejected:
		return StyleRed.Render("✖ rejected")
	default:
		return StyleYellow.Render("○ pending")
	}
}

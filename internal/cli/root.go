package cli

import (
	"time"

	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/alexanderramin/fieldlog/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and environment used by CLI commands.
type App struct {
	Placements  service.PlacementService
	Enrollments service.EnrollmentService
	Logs        service.FieldLogService
	Timeline    service.TimelineService
	Review      service.ReviewService
	Progress    service.ProgressService

	// User is the default acting identity, overridable with --as.
	User     string
	Location *time.Location
	Now      func() time.Time

	// Interactive is true when stdin and stdout are terminals. Prompts and
	// the timeline viewer are refused otherwise.
	Interactive bool

	// RunProgram runs a bubbletea model; tests replace it.
	RunProgram func(m tea.Model) error
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now()
}

// today is the civil date in the configured timezone.
func (a *App) today() time.Time {
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return scheduler.Today(loc, a.now())
}

func (a *App) run(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	as  string
	yes bool
}

// NewRootCmd creates the top-level "fieldlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "fieldlog",
		Short:         "Practicum logbook: periodic logs, supervisor verification and progress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.as, "as", app.User, "Acting user id (student, supervisor or instructor)")
	root.PersistentFlags().BoolVarP(&g.yes, "yes", "y", false, "Skip confirmation prompts")

	root.AddCommand(
		newPlacementCmd(app),
		newEnrollCmd(app, g),
		newPeriodCmd(app),
		newLogCmd(app, g),
		newReviewCmd(app, g),
		newTimelineCmd(app, g),
		newStatsCmd(app, g),
		newDSNCmd(app, g),
	)
	return root
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App, g *globalFlags) *cobra.Command {
	var placement, student string
	var logs, interactive bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show milestones grouped by period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolvePlacementID(ctx, app, placement)
			if err != nil {
				return err
			}
			if student == "" {
				student = g.as
			}
			if interactive && !app.Interactive {
				return errors.New("--interactive needs a terminal")
			}

			today := app.today()
			view, err := app.Timeline.BuildTimeline(ctx, student, pid, logs, today)
			if err != nil {
				return err
			}
			if interactive {
				return app.run(newTimelineModel(view, today))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", formatter.Header(view.Placement.Title),
				formatter.FormatTimeline(view.Timeline, today))
			return nil
		},
	}
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "Placement ID or prefix")
	cmd.Flags().StringVar(&student, "student", "", "Student whose logs are shown (default the acting user)")
	cmd.Flags().BoolVar(&logs, "logs", false, "Include log events")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open a scrollable viewer")
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App, g *globalFlags) *cobra.Command {
	var placement, student string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show logbook progress for a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if student == "" {
				var err error
				if student, err = actingUser(g); err != nil {
					return err
				}
			}
			pid, err := resolvePlacementID(ctx, app, placement)
			if err != nil {
				return err
			}
			sum, err := app.Progress.Summary(ctx, student, pid, app.today())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(sum))
			return nil
		},
	}
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "Placement ID or prefix")
	cmd.Flags().StringVar(&student, "student", "", "Student to summarise (default the acting user)")
	return cmd
}

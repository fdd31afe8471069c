package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPeriodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Inspect reporting periods",
	}
	cmd.AddCommand(newPeriodCurrentCmd(app))
	return cmd
}

func newPeriodCurrentCmd(app *App) *cobra.Command {
	var placement string
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the period a log opened today would cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolvePlacementID(ctx, app, placement)
			if err != nil {
				return err
			}
			cur, err := app.Logs.ComputeCurrentPeriod(ctx, pid, app.today())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCurrentPeriod(cur))
			return nil
		},
	}
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "Placement ID or prefix")
	return cmd
}

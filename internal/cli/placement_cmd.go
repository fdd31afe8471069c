package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/spf13/cobra"
)

func newPlacementCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placement",
		Short: "Manage practicum placements",
	}
	cmd.AddCommand(
		newPlacementCreateCmd(app),
		newPlacementImportCmd(app),
		newPlacementShowCmd(app),
		newPlacementListCmd(app),
	)
	return cmd
}

func newPlacementCreateCmd(app *App) *cobra.Command {
	var title, cadence, tmpl string
	var start, end time.Time
	endFlag := newDateValue(&end)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a placement",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Placement{
				Title:       title,
				StartDate:   start,
				Cadence:     domain.Cadence(cadence),
				LogTemplate: domain.TemplateKind(tmpl),
			}
			if endFlag.set {
				p.EndDate = &end
			}
			if err := app.Placements.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created placement %s %s (%d milestones)\n",
				formatter.Bold(p.Title), formatter.TruncID(p.ID), len(p.Milestones))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Placement title")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(endFlag, "end", "End date (YYYY-MM-DD); omit for open-ended")
	cmd.Flags().StringVar(&cadence, "cadence", "weekly", "Log cadence: daily, weekly or monthly")
	cmd.Flags().StringVar(&tmpl, "template", "custom", "Log template: teaching_practice, industrial_attachment or custom")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newPlacementImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a placement and its enrollments from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Placements.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %s: %d milestones, %d enrollments\n",
				formatter.Bold(res.Placement.Title), formatter.TruncID(res.Placement.ID),
				len(res.Placement.Milestones), len(res.Enrollments))
			return nil
		},
	}
}

func newPlacementShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a placement with milestones and enrollments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			id, err := resolvePlacementID(ctx, app, input)
			if err != nil {
				return err
			}
			p, err := app.Placements.Get(ctx, id)
			if err != nil {
				return err
			}
			enrollments, err := app.Enrollments.ListByPlacement(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlacement(p, enrollments))
			return nil
		},
	}
}

func newPlacementListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List placements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := app.Placements.List(context.Background())
			if err != nil {
				return err
			}
			if len(ps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No placements found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlacementList(ps))
			return nil
		},
	}
}

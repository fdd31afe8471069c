package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/spf13/cobra"
)

func newEnrollCmd(app *App, g *globalFlags) *cobra.Command {
	var placement string
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Manage student enrollments",
	}
	cmd.PersistentFlags().StringVarP(&placement, "placement", "p", "", "Placement ID or prefix")

	cmd.AddCommand(
		newEnrollAddCmd(app, &placement),
		newEnrollStatusCmd(app, g, &placement, "approve", domain.EnrollmentApproved),
		newEnrollStatusCmd(app, g, &placement, "reject", domain.EnrollmentRejected),
	)
	return cmd
}

func newEnrollAddCmd(app *App, placement *string) *cobra.Command {
	var days []string
	var supName, supEmail string
	var approved bool

	cmd := &cobra.Command{
		Use:   "add STUDENT",
		Short: "Enroll a student in a placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolvePlacementID(ctx, app, *placement)
			if err != nil {
				return err
			}
			e := &domain.Enrollment{
				StudentID:    args[0],
				PlacementID:  pid,
				ScheduleDays: days,
				Supervisor:   domain.SupervisorContact{Name: supName, Email: supEmail},
			}
			if approved {
				e.Status = domain.EnrollmentApproved
			}
			if err := app.Enrollments.Enroll(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled %s (%s)\n", formatter.Bold(e.StudentID), e.Status)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&days, "days", nil, "Scheduled weekdays, e.g. monday,wednesday")
	cmd.Flags().StringVar(&supName, "supervisor-name", "", "Workplace supervisor name")
	cmd.Flags().StringVar(&supEmail, "supervisor-email", "", "Workplace supervisor email")
	cmd.Flags().BoolVar(&approved, "approved", false, "Approve the enrollment immediately")
	return cmd
}

func newEnrollStatusCmd(app *App, g *globalFlags, placement *string, verb string, status domain.EnrollmentStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " STUDENT",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a pending enrollment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolvePlacementID(ctx, app, *placement)
			if err != nil {
				return err
			}
			if status == domain.EnrollmentRejected {
				if err := confirm(app, g, "Reject enrollment of "+args[0]+"?", "The student will not be able to log."); err != nil {
					return err
				}
			}
			e, err := app.Enrollments.SetStatus(ctx, args[0], pid, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrollment of %s is now %s\n", formatter.Bold(e.StudentID), e.Status)
			return nil
		},
	}
}

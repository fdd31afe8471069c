package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Supervisor verification and instructor review",
	}
	cmd.AddCommand(
		newReviewVerifyCmd(app),
		newReviewRejectCmd(app, g),
		newReviewReadCmd(app),
		newReviewReopenCmd(app),
		newReviewInboxCmd(app, g),
	)
	return cmd
}

func newReviewVerifyCmd(app *App) *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Verify a submitted log using its verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Review.VerifyByToken(context.Background(), args[0], domain.SupervisorVerified, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Verified %s for %s\n", formatter.Bold(formatter.PeriodLabel(e)), e.StudentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment for the student")
	return cmd
}

func newReviewRejectCmd(app *App, g *globalFlags) *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "reject TOKEN",
		Short: "Reject a submitted log using its verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(app, g, "Reject this log?", "The student will need to reopen and resubmit it."); err != nil {
				return err
			}
			e, err := app.Review.VerifyByToken(context.Background(), args[0], domain.SupervisorRejected, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s for %s\n", formatter.Bold(formatter.PeriodLabel(e)), e.StudentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "Reason for the rejection")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

func newReviewReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ENTRY",
		Short: "Mark a submitted log as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Review.MarkRead(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s of %s as read\n", formatter.PeriodLabel(e), e.StudentID)
			return nil
		},
	}
}

func newReviewReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen ENTRY",
		Short: "Return a rejected log to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Review.Reopen(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s as a draft\n", formatter.Bold(formatter.PeriodLabel(e)))
			return nil
		},
	}
}

func newReviewInboxCmd(app *App, g *globalFlags) *cobra.Command {
	var placement string
	var advance bool
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List submissions changed since you last looked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			viewer, err := actingUser(g)
			if err != nil {
				return err
			}
			pid, err := resolvePlacementID(ctx, app, placement)
			if err != nil {
				return err
			}
			in, err := app.Review.Inbox(ctx, viewer, pid)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInbox(in, app.Location))
			if !advance {
				return nil
			}
			// Advance only past what was shown, so later submissions stay new.
			var latest time.Time
			for _, e := range in.Entries {
				if e.UpdatedAt.After(latest) {
					latest = e.UpdatedAt
				}
			}
			if latest.IsZero() {
				return nil
			}
			if err := app.Review.AdvanceCursor(ctx, viewer, pid, latest); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Inbox marked as seen."))
			return nil
		},
	}
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "Placement ID or prefix")
	cmd.Flags().BoolVar(&advance, "advance", false, "Mark everything listed as seen")
	return cmd
}

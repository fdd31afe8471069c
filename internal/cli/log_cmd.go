package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/export"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/spf13/cobra"
)

// logScope carries the placement flag shared by the log subcommands.
type logScope struct {
	app       *App
	g         *globalFlags
	placement string
}

// resolve returns the acting student and the selected placement.
func (s *logScope) resolve(ctx context.Context) (student, placementID string, err error) {
	if student, err = actingUser(s.g); err != nil {
		return "", "", err
	}
	placementID, err = resolvePlacementID(ctx, s.app, s.placement)
	return student, placementID, err
}

// entry resolves an entry argument of the acting student.
func (s *logScope) entry(ctx context.Context, input string) (string, error) {
	student, pid, err := s.resolve(ctx)
	if err != nil {
		return "", err
	}
	return resolveEntryID(ctx, s.app, student, pid, input)
}

func (s *logScope) print(cmd *cobra.Command, e *domain.LogEntry) {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLogEntry(e, s.app.Location))
}

func newLogCmd(app *App, g *globalFlags) *cobra.Command {
	s := &logScope{app: app, g: g}
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Write and submit practicum logs",
	}
	cmd.PersistentFlags().StringVarP(&s.placement, "placement", "p", "", "Placement ID or prefix")

	cmd.AddCommand(
		newLogNewCmd(s),
		newLogDayCmd(s),
		newLogRemoveDayCmd(s),
		newLogReflectCmd(s),
		newLogFieldsCmd(s),
		newLogDailyCmd(s),
		newLogSubmitCmd(s),
		newLogDeleteCmd(s),
		newLogShowCmd(s),
		newLogListCmd(s),
		newLogExportCmd(s),
	)
	return cmd
}

func newLogNewCmd(s *logScope) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Open the log for the current period (or resume it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			student, pid, err := s.resolve(ctx)
			if err != nil {
				return err
			}
			res, err := s.app.Logs.RequestNewPeriod(ctx, student, pid, s.app.today())
			if err != nil {
				return err
			}
			verb := "Opened"
			switch res.Outcome {
			case app.OutcomeResumed:
				verb = "Resumed"
			case app.OutcomeRecovered:
				verb = "Recovered"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s log %s (%s - %s)\n",
				verb, formatter.Bold(res.Window.Label), formatter.TruncID(res.Entry.ID),
				scheduler.FormatDate(res.Window.Start), scheduler.FormatDate(res.Window.End))
			return nil
		},
	}
}

func newLogDayCmd(s *logScope) *cobra.Command {
	var date time.Time
	dateFlag := newDateValue(&date)
	var fields []string

	cmd := &cobra.Command{
		Use:   "day ENTRY",
		Short: "Add or replace one day of a weekly or monthly log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			payload, err := s.payload(ctx, fields)
			if err != nil {
				return err
			}
			e, err := s.app.Logs.UpsertDay(ctx, id, dateFlag.orToday(s.app), payload)
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
	cmd.Flags().Var(dateFlag, "date", "Day to log (default today)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field as key=value (repeatable)")
	return cmd
}

// payload parses key=value flags using the placement's template.
func (s *logScope) payload(ctx context.Context, pairs []string) (map[string]any, error) {
	_, pid, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.app.Placements.Get(ctx, pid)
	if err != nil {
		return nil, err
	}
	return parseFieldArgs(pairs, p.LogTemplate)
}

func newLogRemoveDayCmd(s *logScope) *cobra.Command {
	var date time.Time
	dateFlag := newDateValue(&date)

	cmd := &cobra.Command{
		Use:   "remove-day ENTRY",
		Short: "Remove one day from a log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			day := dateFlag.orToday(s.app)
			if err := confirm(s.app, s.g, "Remove "+scheduler.FormatDate(day)+"?", "The day's fields are deleted."); err != nil {
				return err
			}
			e, err := s.app.Logs.RemoveDay(ctx, id, day)
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
	cmd.Flags().Var(dateFlag, "date", "Day to remove (default today)")
	return cmd
}

func newLogReflectCmd(s *logScope) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect ENTRY TEXT...",
		Short: "Set the period reflection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			e, err := s.app.Logs.SetReflection(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
}

func newLogFieldsCmd(s *logScope) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "fields ENTRY",
		Short: "Replace the fields of a daily log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			payload, err := s.payload(ctx, fields)
			if err != nil {
				return err
			}
			e, err := s.app.Logs.SetFields(ctx, id, payload)
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field as key=value (repeatable)")
	return cmd
}

func newLogDailyCmd(s *logScope) *cobra.Command {
	var date time.Time
	dateFlag := newDateValue(&date)
	var fields []string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Log a day of a daily placement (back-dating allowed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			student, pid, err := s.resolve(ctx)
			if err != nil {
				return err
			}
			payload, err := s.payload(ctx, fields)
			if err != nil {
				return err
			}
			e, err := s.app.Logs.LogDailyEntry(ctx, student, pid, dateFlag.orToday(s.app), payload)
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
	cmd.Flags().Var(dateFlag, "date", "Date of the log (default today)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field as key=value (repeatable)")
	return cmd
}

func newLogSubmitCmd(s *logScope) *cobra.Command {
	return &cobra.Command{
		Use:   "submit ENTRY",
		Short: "Submit a log for supervisor assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			if err := confirm(s.app, s.g, "Submit for assessment?", "You will not be able to edit this log afterwards."); err != nil {
				return err
			}
			e, err := s.app.Logs.SubmitForAssessment(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s. Verification token for your supervisor: %s\n",
				formatter.Bold(formatter.PeriodLabel(e)), e.VerificationToken)
			return nil
		},
	}
}

func newLogDeleteCmd(s *logScope) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY",
		Short: "Delete a draft log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			if err := confirm(s.app, s.g, "Delete this draft?", "This cannot be undone."); err != nil {
				return err
			}
			if err := s.app.Logs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newLogShowCmd(s *logScope) *cobra.Command {
	return &cobra.Command{
		Use:   "show ENTRY",
		Short: "Show one log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := s.entry(ctx, args[0])
			if err != nil {
				return err
			}
			e, err := s.app.Logs.Get(ctx, id)
			if err != nil {
				return err
			}
			s.print(cmd, e)
			return nil
		},
	}
}

func newLogListCmd(s *logScope) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidLogFilters[status] {
				return fmt.Errorf("invalid status filter %q (all, draft, pending, verified, rejected)", status)
			}
			ctx := context.Background()
			student, pid, err := s.resolve(ctx)
			if err != nil {
				return err
			}
			entries, err := s.app.Logs.List(ctx, student, pid, domain.LogFilter(status))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No logs found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogList(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", string(domain.FilterAll), "Filter: all, draft, pending, verified, rejected")
	return cmd
}

func newLogExportCmd(s *logScope) *cobra.Command {
	var out, student string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a logbook to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			me, pid, err := s.resolve(ctx)
			if err != nil {
				return err
			}
			if student == "" {
				student = me
			}
			p, err := s.app.Placements.Get(ctx, pid)
			if err != nil {
				return err
			}
			entries, err := s.app.Logs.List(ctx, student, pid, domain.FilterAll)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("logbook-%s.xlsx", student)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.WriteLogbook(f, p, entries); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d logs to %s\n", len(entries), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default logbook-<student>.xlsx)")
	cmd.Flags().StringVar(&student, "student", "", "Student to export (default the acting user)")
	return cmd
}

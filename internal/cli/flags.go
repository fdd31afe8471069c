package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/alexanderramin/fieldlog/internal/template"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a civil date in YYYY-MM-DD form.
type dateValue struct {
	t   *time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *time.Time) *dateValue {
	return &dateValue{t: p}
}

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return scheduler.FormatDate(*d.t)
}

func (d *dateValue) Set(s string) error {
	t, err := scheduler.ParseDate(s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	*d.t = t
	d.set = true
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

// orToday returns the flag's date, or today when it was not given.
func (d *dateValue) orToday(app *App) time.Time {
	if d.set {
		return *d.t
	}
	return app.today()
}

// parseFieldArgs turns key=value pairs into a payload. Values of numeric
// template fields are converted to numbers.
func parseFieldArgs(pairs []string, kind domain.TemplateKind) (map[string]any, error) {
	raw := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q (expected key=value)", p)
		}
		raw[k] = v
	}
	t, _ := template.Lookup(kind)
	return template.Coerce(raw, t), nil
}

// actingUser returns the --as identity, failing when none is configured.
func actingUser(g *globalFlags) (string, error) {
	if g.as == "" {
		return "", fmt.Errorf("no acting user: pass --as or set FIELDLOG_USER")
	}
	return g.as, nil
}

// resolvePlacementID matches input against placement IDs: exact first, then
// a unique prefix. An empty input selects the only placement when exactly
// one exists.
func resolvePlacementID(ctx context.Context, app *App, input string) (string, error) {
	placements, err := app.Placements.List(ctx)
	if err != nil {
		return "", err
	}
	if input == "" {
		if len(placements) == 1 {
			return placements[0].ID, nil
		}
		return "", fmt.Errorf("placement is required (--placement)")
	}

	var matches []string
	for _, p := range placements {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("placement not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("placement ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveEntryID matches input against the student's entries in a
// placement by exact ID or unique prefix.
func resolveEntryID(ctx context.Context, app *App, studentID, placementID, input string) (string, error) {
	entries, err := app.Logs.List(ctx, studentID, placementID, domain.FilterAll)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, e := range entries {
		if e.ID == input {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("log entry not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("log entry prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

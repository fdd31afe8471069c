package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

var errNotConfirmed = errors.New("cancelled")

// confirm asks a yes/no question. --yes answers it up front; without a
// terminal the question cannot be asked and the action is refused.
func confirm(app *App, g *globalFlags, title, description string) error {
	if g.yes {
		return nil
	}
	if !app.Interactive {
		return fmt.Errorf("%s: confirmation required, re-run with --yes", title)
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(huh.ThemeBase16()).WithShowHelp(false).Run()
	if err != nil {
		return err
	}
	if !ok {
		return errNotConfirmed
	}
	return nil
}

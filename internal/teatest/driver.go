// Package teatest drives a tea.Model in tests without a tea.Program.
//
// Messages go straight to Update and the returned commands are run inline,
// so a test observes the model after every step without goroutines or a
// terminal.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained commands one Send may run.
const maxDepth = 50

// cmdTimeout skips commands that wait on timers (ticks, blinks).
const cmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a model and records whether it asked to quit.
type Driver struct {
	t     *testing.T
	model tea.Model
	quit  bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before the test starts sending input.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New runs the model's Init command and applies opts in order.
func New(t *testing.T, m tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: m}
	d.drain(m.Init(), 0)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Model returns the current model.
func (d *Driver) Model() tea.Model { return d.model }

// Quitting reports whether a command produced tea.QuitMsg.
func (d *Driver) Quitting() bool { return d.quit }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send delivers msg and runs the resulting commands. It is a no-op after
// the model quit.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a non-rune key such as tea.KeyEsc or tea.KeyDown.
func (d *Driver) Press(k tea.KeyType) {
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}
	msg := run(cmd)
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.drain(c, depth+1)
		}
	case tea.QuitMsg:
		d.quit = true
	default:
		next, c := d.model.Update(msg)
		d.model = next
		d.drain(c, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

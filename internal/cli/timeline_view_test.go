package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/fieldlog/internal/teatest"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimelineDriver(t *testing.T, logs bool) *teatest.Driver {
	t.Helper()
	app := testApp(t)
	seedPlacement(t, app, testutil.WithEndDate(testutil.Date(2024, 1, 31)))
	openWeek(t, app)

	view, err := app.Timeline.BuildTimeline(context.Background(), "s1", onlyPlacement(t, app), logs, app.today())
	require.NoError(t, err)
	return teatest.New(t, newTimelineModel(view, app.today()), teatest.WithSize(100, 40))
}

func TestTimelineModel_WaitsForSize(t *testing.T) {
	app := testApp(t)
	seedPlacement(t, app)
	view, err := app.Timeline.BuildTimeline(context.Background(), "s1", onlyPlacement(t, app), false, app.today())
	require.NoError(t, err)

	d := teatest.New(t, newTimelineModel(view, app.today()))
	assert.Equal(t, "Loading...", d.View())
}

func TestTimelineModel_ToggleLogs(t *testing.T) {
	d := newTimelineDriver(t, false)
	assert.NotContains(t, d.View(), "Week 2 Log  draft")
	assert.Contains(t, d.View(), "logs off")

	d.PressKey('l')
	assert.Contains(t, d.View(), "Week 2 Log  draft")
	assert.Contains(t, d.View(), "logs on")

	d.PressKey('l')
	assert.NotContains(t, d.View(), "Week 2 Log  draft")
}

func TestTimelineModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		d := newTimelineDriver(t, true)
		d.Send(k)
		assert.True(t, d.Quitting(), k.String())
	}
}

func TestTimelineModel_Resize(t *testing.T) {
	d := newTimelineDriver(t, true)
	d.Send(tea.WindowSizeMsg{Width: 60, Height: 10})
	m := d.Model().(*timelineModel)
	assert.Equal(t, 60, m.viewport.Width)
	assert.Equal(t, 8, m.viewport.Height)
}

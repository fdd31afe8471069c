package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type timelineKeys struct {
	ToggleLogs key.Binding
	Quit       key.Binding
}

var defaultTimelineKeys = timelineKeys{
	ToggleLogs: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "toggle logs")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// timelineModel is a scrollable timeline viewer. Toggling log events
// rebuilds from the held view without reading the store again.
type timelineModel struct {
	view     *app.TimelineView
	today    time.Time
	showLogs bool
	keys     timelineKeys
	viewport viewport.Model
	ready    bool
}

func newTimelineModel(view *app.TimelineView, today time.Time) *timelineModel {
	return &timelineModel{
		view:     view,
		today:    today,
		showLogs: view.IncludeLogEvents,
		keys:     defaultTimelineKeys,
	}
}

func (m *timelineModel) Init() tea.Cmd {
	return nil
}

func (m *timelineModel) content() string {
	return formatter.FormatTimeline(m.view.Timeline, m.today)
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 2
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleLogs):
			m.showLogs = !m.showLogs
			m.view.IncludeLogEvents = m.showLogs
			m.view.Timeline = m.view.Rebuild(m.showLogs)
			if m.ready {
				m.viewport.SetContent(m.content())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *timelineModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	logs := "off"
	if m.showLogs {
		logs = "on"
	}
	header := formatter.Header(m.view.Placement.Title)
	footer := formatter.Dim(fmt.Sprintf("logs %s · %s · %s · %3.f%%",
		logs, m.keys.ToggleLogs.Help().Key+" "+m.keys.ToggleLogs.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc,
		m.viewport.ScrollPercent()*100))
	return header + "\n" + m.viewport.View() + "\n" + footer
}

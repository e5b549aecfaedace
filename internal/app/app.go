// Package app wires the Bubble Tea program: root model, frame rendering,
// and the session lifecycle across the four stage screens.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiraja/parley/internal/router"
	"github.com/abiraja/parley/internal/screen"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/screens/review"
	"github.com/abiraja/parley/internal/screens/setup"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/tutor"
	"github.com/abiraja/parley/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Engine   *tutor.Engine
	Mistakes store.MistakeRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	state  *sess.Session
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at setup.
func newAppModel(opts Options) AppModel {
	state := sess.New()
	return AppModel{
		opts:   opts,
		state:  state,
		router: router.New(setup.New(state, opts.Engine, opts.Mistakes)),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case review.RestartMsg:
		m.state.Reset()
		fresh := setup.New(m.state, m.opts.Engine, m.opts.Mistakes)
		return m, m.router.Replace(fresh)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.state.TargetLang, m.state.Level, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

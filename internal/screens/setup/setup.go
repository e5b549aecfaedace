// Package setup implements the first screen: choosing the practice
// language, the native language, and the proficiency level.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiraja/parley/internal/router"
	"github.com/abiraja/parley/internal/scenes"
	"github.com/abiraja/parley/internal/screen"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/screens/sceneselect"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/tutor"
	"github.com/abiraja/parley/internal/ui/components"
	"github.com/abiraja/parley/internal/ui/layout"
	"github.com/abiraja/parley/internal/ui/theme"
)

// Focus order on the form.
const (
	focusTarget = iota
	focusNative
	focusLevel
	focusCount
)

// SetupScreen implements screen.Screen for session setup.
type SetupScreen struct {
	state    *sess.Session
	engine   *tutor.Engine
	mistakes store.MistakeRepo

	target components.TextInput
	native components.TextInput
	levels components.Menu
	focus  int
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen with injected dependencies.
func New(state *sess.Session, engine *tutor.Engine, mistakes store.MistakeRepo) *SetupScreen {
	items := make([]components.MenuItem, 0, 3)
	for _, lvl := range scenes.Levels() {
		items = append(items, components.MenuItem{Label: string(lvl)})
	}

	return &SetupScreen{
		state:    state,
		engine:   engine,
		mistakes: mistakes,
		target:   components.NewTextInput("Language to practice", "e.g. Spanish", 40),
		native:   components.NewTextInput("Your native language", "e.g. English", 40),
		levels:   components.NewMenu(items),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.target.Focus()
}

func (s *SetupScreen) Title() string {
	return "Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.forwardToFocused(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		if s.focus == focusLevel && kmsg.String() == "down" {
			break // menu handles its own down
		}
		return s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "up":
		// From the top of the level menu, keep going up into the fields.
		if s.focus != focusLevel || s.levels.Selected == 0 {
			return s.setFocus((s.focus + focusCount - 1) % focusCount)
		}
	case "enter":
		if s.focus != focusLevel {
			return s.setFocus(s.focus + 1)
		}
		return s.submit()
	}

	return s.forwardToFocused(msg)
}

func (s *SetupScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case focusTarget:
		s.target, cmd = s.target.Update(msg)
	case focusNative:
		s.native, cmd = s.native.Update(msg)
	case focusLevel:
		s.levels, cmd = s.levels.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) setFocus(focus int) (screen.Screen, tea.Cmd) {
	s.focus = focus
	s.target.Blur()
	s.native.Blur()

	var cmd tea.Cmd
	switch focus {
	case focusTarget:
		cmd = s.target.Focus()
	case focusNative:
		cmd = s.native.Focus()
	}
	return s, cmd
}

func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	err := s.state.SubmitSetup(s.target.Value(), s.native.Value(), s.levels.Value())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.errMsg = ""
	next := sceneselect.New(s.state, s.engine, s.mistakes)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Let's set up your practice session"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Tell Parley what you want to practice"))
	b.WriteString("\n\n")

	form := s.target.View() + "\n\n" +
		s.native.View() + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Proficiency level") + "\n" +
		s.levels.View()

	if s.errMsg != "" {
		form += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	card := theme.Card.Width(min(width-8, 56)).Render(form)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(b.String())
}

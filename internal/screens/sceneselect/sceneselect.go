// Package sceneselect implements the scene picker shown after setup.
package sceneselect

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiraja/parley/internal/router"
	"github.com/abiraja/parley/internal/scenes"
	"github.com/abiraja/parley/internal/screen"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/screens/chat"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/tutor"
	"github.com/abiraja/parley/internal/ui/components"
	"github.com/abiraja/parley/internal/ui/layout"
	"github.com/abiraja/parley/internal/ui/theme"
)

// SceneSelectScreen implements screen.Screen for scene selection.
type SceneSelectScreen struct {
	state    *sess.Session
	engine   *tutor.Engine
	mistakes store.MistakeRepo

	menu components.Menu
}

var _ screen.Screen = (*SceneSelectScreen)(nil)
var _ screen.KeyHintProvider = (*SceneSelectScreen)(nil)

// New creates a new SceneSelectScreen. The scene list is fixed per level.
func New(state *sess.Session, engine *tutor.Engine, mistakes store.MistakeRepo) *SceneSelectScreen {
	s := &SceneSelectScreen{
		state:    state,
		engine:   engine,
		mistakes: mistakes,
	}

	items := make([]components.MenuItem, 0, 3)
	for _, scene := range scenes.ScenesFor(state.Level) {
		scene := scene
		items = append(items, components.MenuItem{
			Label:  scene,
			Action: func() tea.Cmd { return s.choose(scene) },
		})
	}
	s.menu = components.NewMenu(items)

	return s
}

func (s *SceneSelectScreen) Init() tea.Cmd {
	return nil
}

func (s *SceneSelectScreen) Title() string {
	return "Choose a Scene"
}

func (s *SceneSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SceneSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// choose commits the selection and moves the session to chat.
func (s *SceneSelectScreen) choose(scene string) tea.Cmd {
	if err := s.state.ChooseScene(scene); err != nil {
		return nil
	}

	next := chat.New(s.state, s.engine, s.mistakes)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SceneSelectScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Pick a roleplay scene"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(s.state.Level + " scenarios for " + s.state.TargetLang))
	b.WriteString("\n\n")

	card := theme.Card.Width(min(width-8, 60)).Render(s.menu.View())
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(b.String())
}

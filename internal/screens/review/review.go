// Package review implements the end-of-chat screen: the recorded mistake
// log with a focus-area hint, plus the option to start a new session.
package review

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiraja/parley/internal/screen"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/ui/layout"
	"github.com/abiraja/parley/internal/ui/theme"
)

// RestartMsg asks the application to reset the session and return to
// setup. Handled at the app level to keep screen packages acyclic.
type RestartMsg struct{}

// loadFailedText is the only error line shown when the mistake log cannot
// be read. The raw database error goes to stderr.
const loadFailedText = "Could not load mistakes."

// mistakesLoadedMsg carries the mistake log back to the UI loop.
type mistakesLoadedMsg struct {
	Mistakes []store.Mistake
	Err      error
}

// ReviewScreen implements screen.Screen for the review stage.
type ReviewScreen struct {
	state    *sess.Session
	mistakes store.MistakeRepo

	rows   []store.Mistake
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a new ReviewScreen.
func New(state *sess.Session, mistakes store.MistakeRepo) *ReviewScreen {
	return &ReviewScreen{
		state:    state,
		mistakes: mistakes,
	}
}

func (r *ReviewScreen) Init() tea.Cmd {
	repo := r.mistakes
	return func() tea.Msg {
		rows, err := repo.ListAll(context.Background())
		return mistakesLoadedMsg{Mistakes: rows, Err: err}
	}
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start over"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mistakesLoadedMsg:
		r.loaded = true
		if msg.Err != nil {
			r.errMsg = loadFailedText
			fmt.Fprintf(os.Stderr, "warning: failed to load mistake log: %v\n", msg.Err)
			return r, nil
		}
		r.rows = msg.Mistakes
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "r":
			return r, func() tea.Msg { return RestartMsg{} }
		}
	}

	return r, nil
}

func (r *ReviewScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Chat ended. Here's your review"))
	b.WriteString("\n\n")

	var body string
	switch {
	case r.errMsg != "":
		body = lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg)
	case !r.loaded:
		body = theme.Hint.Render("Loading...")
	default:
		body = r.renderMistakes()
	}

	card := theme.Card.Width(min(width-8, 76)).Render(body)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(b.String())
}

func (r *ReviewScreen) renderMistakes() string {
	if len(r.rows) == 0 {
		return theme.Body.Foreground(theme.Success).Render("No mistakes recorded. Excellent work!")
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Mistake Review:"))
	b.WriteString("\n\n")

	for i, m := range r.rows {
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d. You said: '%s'", i+1, m.UserInput)))
		b.WriteString("\n")
		b.WriteString(theme.FeedbackLine.Render(fmt.Sprintf("   Mistake: '%s' → Correction: '%s'", m.Mistake, m.Correction)))
		b.WriteString("\n\n")
	}

	focus := "Focus Area: Keep practicing!"
	if len(r.rows) > 2 {
		focus = "Focus Area: Verb conjugation and vocabulary improvement."
	}
	b.WriteString(theme.SceneBanner.Render(focus))

	return b.String()
}

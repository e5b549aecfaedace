// Package chat implements the conversation screen. Each submitted
// utterance runs one tutor turn off the UI loop; the transcript updates
// when the turn comes back.
package chat

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiraja/parley/internal/router"
	"github.com/abiraja/parley/internal/screen"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/screens/review"
	"github.com/abiraja/parley/internal/store"
	"github.com/abiraja/parley/internal/tutor"
	"github.com/abiraja/parley/internal/ui/components"
	"github.com/abiraja/parley/internal/ui/layout"
	"github.com/abiraja/parley/internal/ui/theme"
)

// turnTimeout bounds both LLM calls of a single turn.
const turnTimeout = 2 * time.Minute

// turnFailedText is the only error line shown for a failed turn. Provider
// detail stays in the llm_events log and on stderr.
const turnFailedText = "Tutor unavailable. Please try again."

// turnDoneMsg carries a completed turn back to the UI loop.
type turnDoneMsg struct {
	UserInput string
	Result    *tutor.TurnResult
}

// turnFailedMsg reports a turn that aborted before producing output.
type turnFailedMsg struct {
	Err error
}

// ChatScreen implements screen.Screen for the conversation stage.
type ChatScreen struct {
	state    *sess.Session
	engine   *tutor.Engine
	mistakes store.MistakeRepo

	input  components.TextInput
	busy   bool
	errMsg string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a new ChatScreen.
func New(state *sess.Session, engine *tutor.Engine, mistakes store.MistakeRepo) *ChatScreen {
	return &ChatScreen{
		state:    state,
		engine:   engine,
		mistakes: mistakes,
		input:    components.NewTextInput("", "Say something, or type 'exit' to finish...", 0),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Focus()
}

func (c *ChatScreen) Title() string {
	return "Conversation"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.busy {
		return []layout.KeyHint{
			{Key: "...", Description: "Waiting for tutor"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "exit", Description: "End chat"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnDoneMsg:
		return c.handleTurnDone(msg)

	case turnFailedMsg:
		c.busy = false
		c.errMsg = turnFailedText
		fmt.Fprintf(os.Stderr, "warning: tutor turn failed: %v\n", msg.Err)
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c.submit()
		}
	}

	if c.busy {
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit classifies the input and either ends the chat or starts a turn.
func (c *ChatScreen) submit() (screen.Screen, tea.Cmd) {
	if c.busy {
		return c, nil
	}

	text := c.input.Value()
	switch sess.ClassifyInput(text) {
	case sess.InputEmpty:
		return c, nil

	case sess.InputExit:
		if err := c.state.EndChat(); err != nil {
			return c, nil
		}
		next := review.New(c.state, c.mistakes)
		return c, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}

	c.input.SetValue("")
	c.busy = true
	c.errMsg = ""
	return c, c.runTurn(strings.TrimSpace(text))
}

// runTurn executes one tutor turn asynchronously.
func (c *ChatScreen) runTurn(userInput string) tea.Cmd {
	in := tutor.TurnInput{
		SessionID:  c.state.ID,
		UserInput:  userInput,
		TargetLang: c.state.TargetLang,
		NativeLang: c.state.NativeLang,
		Scene:      c.state.Scene,
	}
	engine := c.engine

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()

		result, err := engine.TakeTurn(ctx, in)
		if err != nil {
			return turnFailedMsg{Err: err}
		}
		return turnDoneMsg{UserInput: userInput, Result: result}
	}
}

func (c *ChatScreen) handleTurnDone(msg turnDoneMsg) (screen.Screen, tea.Cmd) {
	c.busy = false
	if err := c.state.RecordTurn(msg.UserInput, msg.Result.BotReply, msg.Result.Feedback); err != nil {
		c.errMsg = err.Error()
	}
	return c, nil
}

func (c *ChatScreen) View(width, height int) string {
	inputView := c.input.View()
	if c.busy {
		inputView = theme.Hint.Render("Thinking...")
	}

	status := ""
	if c.errMsg != "" {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg)
	}

	// Reserve rows for the input line and status line.
	transcriptHeight := height - 4
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	transcript := c.renderTranscript(width-4, transcriptHeight)

	var b strings.Builder
	b.WriteString(transcript)
	b.WriteString("\n")
	if status != "" {
		b.WriteString(status)
	}
	b.WriteString("\n")
	b.WriteString(inputView)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(b.String())
}

// renderTranscript renders the tail of the transcript that fits.
func (c *ChatScreen) renderTranscript(width, maxLines int) string {
	var lines []string
	for _, line := range c.state.Transcript {
		var rendered string
		switch line.Role {
		case sess.LineScene:
			rendered = theme.SceneBanner.Render("Scene: " + line.Text)
		case sess.LineUser:
			rendered = theme.UserLine.Render("You: " + line.Text)
		case sess.LineBot:
			rendered = theme.BotLine.Render("Tutor: " + line.Text)
		case sess.LineFeedback:
			rendered = theme.FeedbackLine.Render("Feedback: " + line.Text)
		}

		wrapped := lipgloss.NewStyle().Width(width).Render(rendered)
		lines = append(lines, strings.Split(wrapped, "\n")...)
		if line.Role == sess.LineFeedback || line.Role == sess.LineScene {
			lines = append(lines, "")
		}
	}

	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

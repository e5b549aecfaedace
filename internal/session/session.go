// Package session holds the conversation state machine: four stages, the
// mutable session fields, and the guards that decide which user actions
// advance it.
package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Stage is the state machine state.
type Stage int

const (
	StageSetup Stage = iota
	StageSceneSelection
	StageChat
	StageReview
)

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StageSceneSelection:
		return "scene-selection"
	case StageChat:
		return "chat"
	case StageReview:
		return "review"
	default:
		return "unknown"
	}
}

// LineRole tags a transcript line for rendering.
type LineRole int

const (
	LineScene LineRole = iota
	LineUser
	LineBot
	LineFeedback
)

// Line is one display line of the chat transcript.
type Line struct {
	Role LineRole
	Text string
}

// exitKeyword ends the chat stage, compared case-insensitively.
const exitKeyword = "exit"

// Errors surfaced to the UI as inline validation messages.
var (
	ErrMissingFields = errors.New("please complete all fields")
	ErrWrongStage    = errors.New("action not valid in this stage")
)

// Session is one user conversation. It lives in memory only; the mistake
// log persists independently and survives Reset.
type Session struct {
	// ID identifies this conversation in the mistake log.
	ID string

	Stage Stage

	TargetLang string
	NativeLang string
	Level      string
	Scene      string

	// Transcript is append-only within a session and cleared on Reset.
	Transcript []Line
}

// New creates a fresh session in the Setup stage.
func New() *Session {
	return &Session{
		ID:    uuid.New().String(),
		Stage: StageSetup,
	}
}

// SubmitSetup stores the language choices and advances to scene selection.
// Any blank field keeps the session in Setup and returns ErrMissingFields
// for the UI to display.
func (s *Session) SubmitSetup(target, native, level string) error {
	if s.Stage != StageSetup {
		return ErrWrongStage
	}

	target = strings.TrimSpace(target)
	native = strings.TrimSpace(native)
	level = strings.TrimSpace(level)
	if target == "" || native == "" || level == "" {
		return ErrMissingFields
	}

	s.TargetLang = target
	s.NativeLang = native
	s.Level = level
	s.Stage = StageSceneSelection
	return nil
}

// ChooseScene stores the scene, seeds the transcript with its banner line,
// and advances to chat.
func (s *Session) ChooseScene(scene string) error {
	if s.Stage != StageSceneSelection {
		return ErrWrongStage
	}

	s.Scene = scene
	s.Transcript = append(s.Transcript, Line{Role: LineScene, Text: scene})
	s.Stage = StageChat
	return nil
}

// InputKind classifies a chat input before any turn work happens.
type InputKind int

const (
	// InputEmpty is blank or whitespace-only input: a no-op.
	InputEmpty InputKind = iota

	// InputExit is the exit keyword: transition to review, no turn.
	InputExit

	// InputUtterance is a real utterance: run a tutor turn.
	InputUtterance
)

// ClassifyInput decides what a chat submission should do. Empty input and
// the exit keyword must never reach the tutor engine.
func ClassifyInput(text string) InputKind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return InputEmpty
	}
	if strings.EqualFold(trimmed, exitKeyword) {
		return InputExit
	}
	return InputUtterance
}

// RecordTurn appends the three lines a completed turn produces.
func (s *Session) RecordTurn(userInput, botReply, feedback string) error {
	if s.Stage != StageChat {
		return ErrWrongStage
	}

	s.Transcript = append(s.Transcript,
		Line{Role: LineUser, Text: userInput},
		Line{Role: LineBot, Text: botReply},
		Line{Role: LineFeedback, Text: feedback},
	)
	return nil
}

// EndChat moves the session to the review stage. The transcript is kept
// for display; nothing else changes.
func (s *Session) EndChat() error {
	if s.Stage != StageChat {
		return ErrWrongStage
	}
	s.Stage = StageReview
	return nil
}

// Reset clears every session field and returns to Setup under a fresh ID.
// The persisted mistake log is deliberately untouched.
func (s *Session) Reset() {
	*s = Session{
		ID:    uuid.New().String(),
		Stage: StageSetup,
	}
}

// Package tutor implements one conversational turn: an in-scene reply, a
// grammar check, and the mistake logging that the check may trigger.
package tutor

import (
	"context"
	"fmt"
	"os"

	"github.com/abiraja/parley/internal/llm"
	"github.com/abiraja/parley/internal/store"
)

// Config holds tutor engine tunables.
type Config struct {
	// MaxTokens caps each completion.
	MaxTokens int

	// Temperature is passed to the model on both calls.
	Temperature float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// TurnInput carries the session snapshot a turn needs.
type TurnInput struct {
	SessionID  string
	UserInput  string
	TargetLang string
	NativeLang string
	Scene      string
}

// TurnResult is what one completed turn produces for display.
type TurnResult struct {
	// BotReply is the cleaned in-scene response.
	BotReply string

	// Feedback is the cleaned correction response. Shown even when no
	// mistake was recorded (it then reads "Correct!").
	Feedback string

	// MistakeLogged reports whether a mistake row was written.
	MistakeLogged bool
}

// Engine orchestrates the two LLM calls of a turn and the conditional
// mistake logging.
type Engine struct {
	provider llm.Provider
	mistakes store.MistakeRepo
	config   Config
}

// New creates an Engine.
func New(provider llm.Provider, mistakes store.MistakeRepo, cfg Config) *Engine {
	return &Engine{
		provider: provider,
		mistakes: mistakes,
		config:   cfg,
	}
}

// TakeTurn runs one conversational turn. Callers must filter empty input
// and the exit keyword before calling; the engine assumes a real utterance.
//
// The two completions run sequentially: reply first, correction second. A
// failure in either aborts the whole turn with no transcript output and no
// mistake row. A failure writing the mistake row does not abort the turn;
// the conversation matters more than the log.
func (e *Engine) TakeTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	reply, err := e.complete(llm.WithPurpose(ctx, "scene-reply"),
		buildResponsePrompt(in.UserInput, in.TargetLang, in.Scene))
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	feedback, err := e.complete(llm.WithPurpose(ctx, "correction"),
		buildCorrectionPrompt(in.UserInput, in.TargetLang, in.NativeLang, in.Scene))
	if err != nil {
		return nil, fmt.Errorf("check grammar: %w", err)
	}

	result := &TurnResult{
		BotReply: reply,
		Feedback: feedback,
	}

	if !isCorrect(feedback) {
		m := &store.Mistake{
			SessionID:  in.SessionID,
			UserInput:  in.UserInput,
			Mistake:    in.UserInput,
			Correction: extractCorrection(feedback),
		}
		if err := e.mistakes.Append(ctx, m); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log mistake: %v\n", err)
		} else {
			result.MistakeLogged = true
		}
	}

	return result, nil
}

// complete sends a single-message request and returns the cleaned text.
func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	return StripReasoning(resp.Text), nil
}

package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abiraja/parley/internal/llm"
	"github.com/abiraja/parley/internal/store"
)

// fakeMistakeRepo records appends in memory.
type fakeMistakeRepo struct {
	appended []store.Mistake
	fail     error
}

func (f *fakeMistakeRepo) Append(_ context.Context, m *store.Mistake) error {
	if f.fail != nil {
		return f.fail
	}
	f.appended = append(f.appended, *m)
	return nil
}

func (f *fakeMistakeRepo) ListAll(context.Context) ([]store.Mistake, error) {
	return f.appended, nil
}

func (f *fakeMistakeRepo) DeleteAll(context.Context) error {
	f.appended = nil
	return nil
}

func turnInput() TurnInput {
	return TurnInput{
		SessionID:  "test-session",
		UserInput:  "Hola, como estas?",
		TargetLang: "Spanish",
		NativeLang: "English",
		Scene:      "You're at a market buying fruit.",
	}
}

func TestTakeTurnCorrectInput(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "¡Bien! ¿Qué fruta buscas hoy?"},
		llm.MockResponse{Text: "Correct!"},
	)
	repo := &fakeMistakeRepo{}
	engine := New(provider, repo, DefaultConfig())

	result, err := engine.TakeTurn(context.Background(), turnInput())
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}

	if result.BotReply != "¡Bien! ¿Qué fruta buscas hoy?" {
		t.Errorf("BotReply = %q", result.BotReply)
	}
	if result.Feedback != "Correct!" {
		t.Errorf("Feedback = %q", result.Feedback)
	}
	if result.MistakeLogged {
		t.Error("MistakeLogged = true for a correct input")
	}
	if len(repo.appended) != 0 {
		t.Errorf("appended %d rows, want 0", len(repo.appended))
	}
	if provider.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", provider.CallCount())
	}
}

func TestTakeTurnMistakeRecorded(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "¡Hola! Las manzanas están frescas."},
		llm.MockResponse{Text: "Corrected to: 'Hola, ¿cómo estás?'. Question marks are paired in Spanish."},
	)
	repo := &fakeMistakeRepo{}
	engine := New(provider, repo, DefaultConfig())

	in := turnInput()
	result, err := engine.TakeTurn(context.Background(), in)
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}

	if !result.MistakeLogged {
		t.Error("MistakeLogged = false, want true")
	}
	if len(repo.appended) != 1 {
		t.Fatalf("appended %d rows, want 1", len(repo.appended))
	}

	m := repo.appended[0]
	if m.SessionID != in.SessionID {
		t.Errorf("SessionID = %q", m.SessionID)
	}
	if m.UserInput != in.UserInput || m.Mistake != in.UserInput {
		t.Errorf("UserInput = %q, Mistake = %q, want both %q", m.UserInput, m.Mistake, in.UserInput)
	}
	if m.Correction != "'Hola, ¿cómo estás?'" {
		t.Errorf("Correction = %q", m.Correction)
	}
}

func TestTakeTurnUnparseableCorrection(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "Una respuesta."},
		llm.MockResponse{Text: "There is an error in your verb choice here."},
	)
	repo := &fakeMistakeRepo{}
	engine := New(provider, repo, DefaultConfig())

	result, err := engine.TakeTurn(context.Background(), turnInput())
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if !result.MistakeLogged {
		t.Fatal("MistakeLogged = false, want true")
	}
	if repo.appended[0].Correction != ParseErrorSentinel {
		t.Errorf("Correction = %q, want sentinel", repo.appended[0].Correction)
	}
}

func TestTakeTurnReplyFailureAbortsTurn(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("boom")},
	)
	repo := &fakeMistakeRepo{}
	engine := New(provider, repo, DefaultConfig())

	_, err := engine.TakeTurn(context.Background(), turnInput())
	if err == nil {
		t.Fatal("expected error")
	}
	// The correction call must not run once the reply failed.
	if provider.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", provider.CallCount())
	}
	if len(repo.appended) != 0 {
		t.Errorf("appended %d rows, want 0", len(repo.appended))
	}
}

func TestTakeTurnCorrectionFailureAbortsTurn(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "Una respuesta."},
		llm.MockResponse{Err: errors.New("boom")},
	)
	repo := &fakeMistakeRepo{}
	engine := New(provider, repo, DefaultConfig())

	_, err := engine.TakeTurn(context.Background(), turnInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.appended) != 0 {
		t.Errorf("appended %d rows, want 0", len(repo.appended))
	}
}

func TestTakeTurnStoreFailureDoesNotAbort(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "Una respuesta."},
		llm.MockResponse{Text: "Corrected to: algo mejor. Explanation."},
	)
	repo := &fakeMistakeRepo{fail: errors.New("disk full")}
	engine := New(provider, repo, DefaultConfig())

	result, err := engine.TakeTurn(context.Background(), turnInput())
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if result.MistakeLogged {
		t.Error("MistakeLogged = true despite store failure")
	}
	if result.BotReply == "" || result.Feedback == "" {
		t.Error("turn output missing despite non-fatal store failure")
	}
}

func TestTakeTurnStripsReasoning(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "<think>plan the reply</think>¡Claro que sí!"},
		llm.MockResponse{Text: "<think>check grammar</think>Correct!"},
	)
	engine := New(provider, &fakeMistakeRepo{}, DefaultConfig())

	result, err := engine.TakeTurn(context.Background(), turnInput())
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if result.BotReply != "¡Claro que sí!" {
		t.Errorf("BotReply = %q", result.BotReply)
	}
	if result.Feedback != "Correct!" {
		t.Errorf("Feedback = %q", result.Feedback)
	}
}

func TestTakeTurnPromptContents(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: "reply"},
		llm.MockResponse{Text: "Correct!"},
	)
	engine := New(provider, &fakeMistakeRepo{}, DefaultConfig())

	in := turnInput()
	if _, err := engine.TakeTurn(context.Background(), in); err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}

	if len(provider.Calls) != 2 {
		t.Fatalf("Calls = %d, want 2", len(provider.Calls))
	}

	replyPrompt := provider.Calls[0].Messages[0].Content
	if !strings.Contains(replyPrompt, in.UserInput) || !strings.Contains(replyPrompt, in.Scene) {
		t.Errorf("reply prompt missing input or scene: %q", replyPrompt)
	}

	correctionPrompt := provider.Calls[1].Messages[0].Content
	for _, want := range []string{in.UserInput, in.TargetLang, in.NativeLang, in.Scene, "Correct!"} {
		if !strings.Contains(correctionPrompt, want) {
			t.Errorf("correction prompt missing %q", want)
		}
	}

	for _, call := range provider.Calls {
		if call.Temperature != 0.7 {
			t.Errorf("Temperature = %v, want 0.7", call.Temperature)
		}
	}
}

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abiraja/parley/internal/store"
)

// fakeEventRepo captures appended events in memory.
type fakeEventRepo struct {
	events []store.LLMEventData
	fail   error
}

func (f *fakeEventRepo) AppendLLMEvent(_ context.Context, data store.LLMEventData) error {
	if f.fail != nil {
		return f.fail
	}
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEventRepo) QueryLLMEvents(context.Context, int) ([]store.LLMEventRecord, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetLLMEvent(context.Context, int64) (*store.LLMEventRecord, error) {
	return nil, nil
}

func TestLoggingProviderRecordsSuccess(t *testing.T) {
	inner := NewMockProvider(MockResponse{
		Text:  "Correct!",
		Usage: Usage{InputTokens: 10, OutputTokens: 5},
	})
	repo := &fakeEventRepo{}
	p := WithLogging(inner, repo)

	ctx := WithPurpose(context.Background(), "correction")
	resp, err := p.Generate(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: "check this"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "Correct!" {
		t.Errorf("Text = %q", resp.Text)
	}

	if len(repo.events) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "correction" {
		t.Errorf("Purpose = %q", e.Purpose)
	}
	if !e.Success {
		t.Error("Success = false")
	}
	if e.InputTokens != 10 || e.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "check this") {
		t.Errorf("RequestBody missing prompt: %q", e.RequestBody)
	}
	if e.ResponseBody != "Correct!" {
		t.Errorf("ResponseBody = %q", e.ResponseBody)
	}
}

func TestLoggingProviderRecordsFailure(t *testing.T) {
	inner := NewMockProvider(MockResponse{Err: errors.New("boom")})
	repo := &fakeEventRepo{}
	p := WithLogging(inner, repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Success {
		t.Error("Success = true for a failed request")
	}
	if !strings.Contains(e.ErrorMessage, "boom") {
		t.Errorf("ErrorMessage = %q", e.ErrorMessage)
	}
	if e.Purpose != "unknown" {
		t.Errorf("Purpose = %q, want unknown", e.Purpose)
	}
}

func TestLoggingProviderLogFailureDoesNotAbort(t *testing.T) {
	inner := NewMockProvider(MockResponse{Text: "ok"})
	repo := &fakeEventRepo{fail: errors.New("db locked")}
	p := WithLogging(inner, repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate failed because of log error: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q", resp.Text)
	}
}

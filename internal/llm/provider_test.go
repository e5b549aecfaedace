package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProviderFIFO(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Text: "second"},
	)

	ctx := context.Background()
	req := Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}

	resp, err := m.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "first" {
		t.Errorf("Text = %q, want %q", resp.Text, "first")
	}

	resp, err = m.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "second" {
		t.Errorf("Text = %q, want %q", resp.Text, "second")
	}

	// Queue exhausted.
	_, err = m.Generate(ctx, req)
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}

	if m.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", m.CallCount())
	}
}

func TestMockProviderError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(MockResponse{Err: boom})

	_, err := m.Generate(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestMockProviderRecordsRequests(t *testing.T) {
	m := NewMockProvider(MockResponse{Text: "ok"})

	req := Request{
		Messages:    []Message{{Role: RoleUser, Content: "hello"}},
		MaxTokens:   128,
		Temperature: 0.7,
	}
	if _, err := m.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(m.Calls) != 1 {
		t.Fatalf("Calls = %d, want 1", len(m.Calls))
	}
	got := m.Calls[0]
	if got.Messages[0].Content != "hello" || got.MaxTokens != 128 || got.Temperature != 0.7 {
		t.Errorf("recorded request mismatch: %+v", got)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("PurposeFrom(bare ctx) = %q, want %q", got, "unknown")
	}

	ctx = WithPurpose(ctx, "correction")
	if got := PurposeFrom(ctx); got != "correction" {
		t.Errorf("PurposeFrom = %q, want %q", got, "correction")
	}
}

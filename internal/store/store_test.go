package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"mistakes", "llm_events"} {
		var name string
		err := s.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestMistakeAppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	m := &Mistake{
		SessionID:  "sess-1",
		UserInput:  "Hola como estas",
		Mistake:    "Hola como estas",
		Correction: "'Hola, ¿cómo estás?'",
	}
	if err := repo.Append(ctx, m); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if m.ID == 0 {
		t.Error("Append did not assign an ID")
	}
	if m.Timestamp.IsZero() {
		t.Error("Append did not assign a timestamp")
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ListAll returned %d rows, want 1", len(rows))
	}

	got := rows[0]
	if got.SessionID != m.SessionID || got.UserInput != m.UserInput ||
		got.Mistake != m.Mistake || got.Correction != m.Correction {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(m.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, m.Timestamp)
	}
}

func TestMistakeListInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.Append(ctx, &Mistake{
			SessionID:  "sess",
			UserInput:  fmt.Sprintf("input-%d", i),
			Mistake:    fmt.Sprintf("input-%d", i),
			Correction: fmt.Sprintf("fix-%d", i),
		})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	for i, m := range rows {
		if want := fmt.Sprintf("input-%d", i); m.UserInput != want {
			t.Errorf("row %d = %q, want %q", i, m.UserInput, want)
		}
	}
}

func TestMistakeTimestampFormat(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	fixed := time.Date(2026, 8, 25, 14, 30, 5, 0, time.Local)
	m := &Mistake{SessionID: "sess", UserInput: "x", Mistake: "x", Correction: "y", Timestamp: fixed}
	if err := repo.Append(ctx, m); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var stored string
	if err := s.DB().QueryRow(`SELECT timestamp FROM mistakes WHERE id = ?`, m.ID).Scan(&stored); err != nil {
		t.Fatalf("read raw timestamp: %v", err)
	}
	if stored != "2026-08-25 14:30:05" {
		t.Errorf("stored timestamp = %q, want %q", stored, "2026-08-25 14:30:05")
	}
}

func TestMistakeDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = repo.Append(ctx, &Mistake{SessionID: "sess", UserInput: "x", Mistake: "x", Correction: "y"})
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows after DeleteAll, want 0", len(rows))
	}
}

func TestSchemaSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := s1.MistakeRepo().Append(ctx, &Mistake{SessionID: "s", UserInput: "a", Mistake: "a", Correction: "b"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_ = s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	rows, err := s2.MistakeRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows after reopen, want 1", len(rows))
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEventRepo()
	ctx := context.Background()

	data := LLMEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet",
		Purpose:      "correction",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    1200,
		Success:      true,
		RequestBody:  `{"prompt":"x"}`,
		ResponseBody: "Correct!",
	}
	if err := repo.AppendLLMEvent(ctx, data); err != nil {
		t.Fatalf("AppendLLMEvent: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, 10)
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Provider != data.Provider || e.Model != data.Model || e.Purpose != data.Purpose {
		t.Errorf("identity fields mismatch: %+v", e)
	}
	if e.InputTokens != 100 || e.OutputTokens != 50 || e.LatencyMs != 1200 {
		t.Errorf("usage fields mismatch: %+v", e)
	}
	if !e.Success {
		t.Error("Success = false")
	}
	if e.Timestamp.IsZero() {
		t.Error("Timestamp not recorded")
	}

	got, err := repo.GetLLMEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetLLMEvent: %v", err)
	}
	if got == nil || got.ResponseBody != "Correct!" {
		t.Errorf("GetLLMEvent = %+v", got)
	}
}

func TestGetLLMEventNotFound(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LLMEventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetLLMEvent: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestQueryLLMEventsNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = repo.AppendLLMEvent(ctx, LLMEventData{
			Provider: "mock", Model: "mock",
			Purpose: fmt.Sprintf("purpose-%d", i),
			Success: true,
		})
	}

	events, err := repo.QueryLLMEvents(ctx, 2)
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Purpose != "purpose-4" || events[1].Purpose != "purpose-3" {
		t.Errorf("not newest first: %q, %q", events[0].Purpose, events[1].Purpose)
	}
}

package store

import (
	"context"
	"time"
)

// TimestampLayout is the wall-clock format stored in the mistakes table.
// Second precision, stable across runs.
const TimestampLayout = "2006-01-02 15:04:05"

// Mistake is one row of the persisted mistake log. Rows are created by the
// tutor engine when a correction flags an error; they are never updated or
// deleted during a conversation, and they survive an in-app "start over".
type Mistake struct {
	ID         int64
	SessionID  string
	UserInput  string
	Mistake    string
	Correction string
	Timestamp  time.Time
}

// MistakeRepo provides append and full-scan access to the mistake log.
type MistakeRepo interface {
	// Append inserts a new mistake row, assigning its ID and timestamp.
	Append(ctx context.Context, m *Mistake) error

	// ListAll returns every recorded mistake in insertion order.
	ListAll(ctx context.Context) ([]Mistake, error)

	// DeleteAll clears the log. Only the explicit `parley reset` command
	// calls this; the conversation flow never does.
	DeleteAll(ctx context.Context) error
}

// LLMEventData captures a single LLM request for the observability log.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMEventData
}

// LLMEventRepo records and queries LLM request events.
type LLMEventRepo interface {
	// AppendLLMEvent records an LLM API call event.
	AppendLLMEvent(ctx context.Context, data LLMEventData) error

	// QueryLLMEvents returns the most recent events, newest first.
	// limit <= 0 means no limit.
	QueryLLMEvents(ctx context.Context, limit int) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error)
}

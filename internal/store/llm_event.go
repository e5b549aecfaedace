package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type llmEventRepo struct {
	db *sql.DB
}

var _ LLMEventRepo = (*llmEventRepo)(nil)

func (r *llmEventRepo) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events (
			timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

func (r *llmEventRepo) QueryLLMEvents(ctx context.Context, limit int) ([]LLMEventRecord, error) {
	q := `SELECT id, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		FROM llm_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *llmEventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	rec, err := scanLLMEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanLLMEvent(scan func(dest ...any) error) (*LLMEventRecord, error) {
	var rec LLMEventRecord
	var ts string
	var success int
	err := scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
		&success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	rec.Success = success != 0
	if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
		rec.Timestamp = t
	}
	return &rec, nil
}

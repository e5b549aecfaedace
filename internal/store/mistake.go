package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type mistakeRepo struct {
	db *sql.DB
}

var _ MistakeRepo = (*mistakeRepo)(nil)

func (r *mistakeRepo) Append(ctx context.Context, m *Mistake) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	// Truncate to second precision so the stored text round-trips.
	m.Timestamp = m.Timestamp.Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mistakes (session_id, user_input, mistake, correction, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		m.SessionID, m.UserInput, m.Mistake, m.Correction,
		m.Timestamp.Format(TimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert mistake: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("mistake id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *mistakeRepo) ListAll(ctx context.Context) ([]Mistake, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, user_input, mistake, correction, timestamp
		 FROM mistakes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query mistakes: %w", err)
	}
	defer rows.Close()

	var out []Mistake
	for rows.Next() {
		var m Mistake
		var ts string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserInput, &m.Mistake, &m.Correction, &ts); err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		m.Timestamp, err = time.ParseInLocation(TimestampLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse mistake timestamp %q: %w", ts, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *mistakeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mistakes`); err != nil {
		return fmt.Errorf("delete mistakes: %w", err)
	}
	return nil
}

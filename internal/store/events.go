package store

import (
	"context"
	"time"
)

// Event is a row in the events table.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEventParams holds parameters for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `
INSERT INTO events (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, level, category, message, metadata, created_at
`

// CreateEvent appends a record to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listRecentEvents = `
SELECT id, level, category, message, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ?
`

// ListRecentEvents returns the most recent event-log records.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

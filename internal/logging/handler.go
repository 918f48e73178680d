// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN-and-above records
// to the database-backed event log.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/msgdepot/msgdepot-go/internal/model"
	"github.com/msgdepot/msgdepot-go/internal/store"
)

// EventLogHandler wraps another slog.Handler and additionally persists
// records at or above a threshold level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler wraps inner so WARN and above also land in the events
// table.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel is NewEventLogHandler with a custom threshold.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.persist(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

// persist writes one record to the events table. A background context is used
// so cancellation of the logging caller's request cannot lose the event.
func (h *EventLogHandler) persist(r slog.Record) {
	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  eventCategory(r),
		Message:   r.Message,
		Metadata:  eventMetadata(r),
		CreatedAt: r.Time,
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// eventCategory takes an explicit "category" attribute when present, else
// infers one from the message text.
func eventCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "import"):
		return model.EventCategoryImport
	case strings.Contains(msg, "translate"):
		return model.EventCategoryTranslate
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	case strings.Contains(msg, "completeness") || strings.Contains(msg, "snapshot"):
		return model.EventCategoryScheduler
	case strings.Contains(msg, "message") || strings.Contains(msg, "key"):
		return model.EventCategoryMessage
	default:
		return model.EventCategorySystem
	}
}

// eventMetadata serializes the record's attributes (minus category) to JSON.
func eventMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}
	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	data, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels for the event log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories group log records by subsystem.
const (
	EventCategoryMessage   = "message"
	EventCategoryImport    = "import"
	EventCategoryTranslate = "translate"
	EventCategoryCache     = "cache"
	EventCategoryScheduler = "scheduler"
	EventCategorySystem    = "system"
)

// Event is one record in the event log.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

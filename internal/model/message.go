// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Message is the external view of one translation: the full dotted key path
// together with its locale and value. Key nodes and tree structure stay
// internal to the store.
type Message struct {
	ID      int64  `json:"id"`
	Key     string `json:"key"`
	Locale  string `json:"locale"`
	Message string `json:"message"`
}

// KeyInfo describes one key node in the tree as exposed to the UI:
// its full path and optional description.
type KeyInfo struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

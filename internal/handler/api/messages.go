// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/msgdepot/msgdepot-go/internal/service"
)

// CreateMessageRequest represents the request body for creating a message.
type CreateMessageRequest struct {
	Key     string `json:"key"`
	Locale  string `json:"locale"`
	Message string `json:"message"`
}

// UpdateMessageRequest represents the request body for updating a message.
type UpdateMessageRequest struct {
	Message string `json:"message"`
}

// ListMessages handles GET /api/messages with optional key and locale filters.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	filter := service.ListFilter{
		Key:    r.URL.Query().Get("key"),
		Locale: r.URL.Query().Get("locale"),
	}

	messages, err := h.svc.ListMessages(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, messages, &Meta{Total: len(messages)})
}

// CreateMessage handles POST /api/messages.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Key == "" || req.Locale == "" {
		WriteBadRequest(w, "key and locale are required")
		return
	}

	created, err := h.svc.CreateMessage(r.Context(), req.Key, req.Locale, req.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, created)
}

// UpdateMessage handles PUT /api/messages/{id}.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID")
		return
	}

	var req UpdateMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateMessage(r.Context(), id, req.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteMessage handles DELETE /api/messages/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID")
		return
	}

	if err := h.svc.DeleteMessage(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LocaleTree handles GET /api/messages/{locale}: the nested message tree one
// client application loads at startup.
func (h *Handler) LocaleTree(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	tree, err := h.svc.Export(r.Context(), locale)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tree)
}

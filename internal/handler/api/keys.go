// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// SetKeyDescriptionRequest represents the request body for describing a key.
type SetKeyDescriptionRequest struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// ListKeys handles GET /api/keys.
func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.ListKeys(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, keys, &Meta{Total: len(keys)})
}

// DeleteByKey handles DELETE /api/keys?key=menu.file: cascade delete of the
// key and its whole subtree. An absent key is still a 200 with zero counts.
func (h *Handler) DeleteByKey(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		WriteBadRequest(w, "key query parameter is required")
		return
	}

	result, err := h.svc.DeleteByKey(r.Context(), key)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, result, nil)
}

// SetKeyDescription handles PUT /api/keys/description.
func (h *Handler) SetKeyDescription(w http.ResponseWriter, r *http.Request) {
	var req SetKeyDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Key == "" {
		WriteBadRequest(w, "key is required")
		return
	}

	if err := h.svc.SetKeyDescription(r.Context(), req.Key, req.Description); err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"key": req.Key}, nil)
}

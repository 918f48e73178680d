// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// AddLanguageRequest represents the request body for registering a language.
type AddLanguageRequest struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// ListLanguages handles GET /api/languages.
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.svc.ListLanguages(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, languages, &Meta{Total: len(languages)})
}

// AddLanguage handles POST /api/languages.
func (h *Handler) AddLanguage(w http.ResponseWriter, r *http.Request) {
	var req AddLanguageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" {
		WriteBadRequest(w, "code is required")
		return
	}

	created, err := h.svc.AddLanguage(r.Context(), req.Code, req.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, created)
}

// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// TranslateRequest represents the request body for auto-translate.
type TranslateRequest struct {
	Key     string   `json:"key"`
	Source  string   `json:"source"`
	Targets []string `json:"targets"`
}

// Translate handles POST /api/translate: machine-translates one key's
// message into every target locale. Per-locale provider failures come back
// in the result, not as an HTTP error.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	if h.translator == nil {
		WriteError(w, http.StatusServiceUnavailable, "translation_unavailable",
			"No translation provider is configured", nil)
		return
	}

	var req TranslateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Key == "" || req.Source == "" || len(req.Targets) == 0 {
		WriteBadRequest(w, "key, source and targets are required")
		return
	}

	result, err := h.svc.AutoTranslate(r.Context(), h.translator, req.Key, req.Source, req.Targets)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, result, nil)
}

// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msgdepot/msgdepot-go/internal/transfer"
)

// ImportRequest represents the request body for a bulk import. Messages is a
// nested tree in the same shape export produces.
type ImportRequest struct {
	Messages  map[string]any `json:"messages"`
	Overwrite bool           `json:"overwrite"`
}

// Import handles POST /api/import/{locale}.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// An empty tree is a valid no-op import and reports zero counts.
	entries, err := transfer.Flatten(req.Messages)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	result, err := h.svc.BulkImport(r.Context(), locale, entries, req.Overwrite)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, result, nil)
}

// Export handles GET /api/export and GET /api/export?locale=de. Without a
// locale the response holds one tree per locale.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")

	if locale == "" {
		tree, err := h.svc.ExportAll(r.Context())
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, tree)
		return
	}

	tree, err := h.svc.Export(r.Context(), locale)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tree)
}

// Stats handles GET /api/stats/{locale}: the completeness report.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	report, err := h.svc.MissingKeys(r.Context(), locale)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, report, nil)
}

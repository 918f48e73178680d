// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for msgdepot.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msgdepot/msgdepot-go/internal/keypath"
	"github.com/msgdepot/msgdepot-go/internal/service"
	"github.com/msgdepot/msgdepot-go/internal/transfer"
	"github.com/msgdepot/msgdepot-go/internal/translate"
	"github.com/msgdepot/msgdepot-go/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc        *service.MessageService
	translator translate.Translator // nil when no provider is configured
	logger     *slog.Logger
}

// NewHandler creates a new API handler. translator may be nil, in which case
// the auto-translate route reports the feature as unavailable.
func NewHandler(svc *service.MessageService, translator translate.Translator, logger *slog.Logger) *Handler {
	return &Handler{
		svc:        svc,
		translator: translator,
		logger:     logger,
	}
}

// Routes wires all API routes onto a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Status)

	r.Route("/messages", func(r chi.Router) {
		r.Get("/", h.ListMessages)
		r.Post("/", h.CreateMessage)
		r.Get("/{locale}", h.LocaleTree)
		r.Put("/{id}", h.UpdateMessage)
		r.Delete("/{id}", h.DeleteMessage)
	})

	r.Route("/keys", func(r chi.Router) {
		r.Get("/", h.ListKeys)
		r.Delete("/", h.DeleteByKey)
		r.Put("/description", h.SetKeyDescription)
	})

	r.Route("/languages", func(r chi.Router) {
		r.Get("/", h.ListLanguages)
		r.Post("/", h.AddLanguage)
	})

	r.Get("/export", h.Export)
	r.Get("/stats/{locale}", h.Stats)
	r.Post("/import/{locale}", h.Import)
	r.Post("/translate", h.Translate)

	return r
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains count metadata for list responses.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// writeServiceError maps service errors onto HTTP responses. Unknown errors
// become opaque 500s; the detail stays in the log.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLocale),
		errors.Is(err, keypath.ErrInvalidPath),
		errors.Is(err, transfer.ErrTooDeep):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, service.ErrDuplicateTranslation),
		errors.Is(err, service.ErrDuplicateLanguage),
		errors.Is(err, keypath.ErrPathConflict),
		errors.Is(err, transfer.ErrPathConflict):
		WriteConflict(w, err.Error())
	case errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, keypath.ErrKeyNotFound):
		WriteNotFound(w, err.Error())
	default:
		h.logger.Error("api request failed", "error", err)
		WriteInternalError(w, "Internal server error")
	}
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: version.Version,
	}, nil)
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
)

// Error types returned in Error.Type.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeNotFound   = "not_found"
	ErrTypeConflict   = "conflict"
	ErrTypeInternal   = "internal_error"
)

// Error is the JSON body of every failed request.
type Error struct {
	Context   map[string]any `json:"context,omitempty"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, ctx map[string]any) {
	body := Error{
		Type:      errType,
		Message:   message,
		Context:   ctx,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		"type", errType,
		"status", status,
		"message", message,
		"path", r.URL.Path,
		"request_id", body.RequestID)

	writeJSON(w, status, body)
}

// handleError maps domain errors onto HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidRange):
		writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
	case errors.Is(err, common.ErrNotFound):
		writeError(w, r, http.StatusNotFound, ErrTypeNotFound, err.Error(), nil)
	case errors.Is(err, common.ErrDuplicateEntry):
		writeError(w, r, http.StatusConflict, ErrTypeConflict, err.Error(), nil)
	default:
		writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
	}
}

func validationError(w http.ResponseWriter, r *http.Request, field, message string) {
	writeError(w, r, http.StatusBadRequest, ErrTypeValidation, message, map[string]any{"field": field})
}

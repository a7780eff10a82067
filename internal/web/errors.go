package web

// errors.go provides unified error response handling for the web layer.
// Errors are logged with full technical detail server-side and returned to
// clients as user-friendly messages with support codes.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hirestack/ats-import/internal/importer"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message,
// Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError maps a pipeline error to a user-friendly JSON response and
// logs the technical error with request context.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := importer.MapError(err)
	status := statusFor(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusFor picks the HTTP status for a pipeline error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, importer.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, importer.ErrMalformedFile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrBackend):
		return http.StatusBadGateway
	case errors.Is(err, importer.ErrUnsupportedFile),
		errors.Is(err, importer.ErrNoJobMapped),
		errors.Is(err, importer.ErrUnknownSheet),
		errors.Is(err, importer.ErrUnknownJob):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

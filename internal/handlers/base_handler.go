package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/worklog/backend/internal/errs"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// errorResponse is the JSON body of every failure response
type errorResponse struct {
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, errorResponse{Message: message})
}

// HandleServiceError translates a service error into an HTTP response.
// Errors outside the taxonomy are logged and surfaced as a generic 500; raw
// store error text never reaches the client.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		h.RespondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Validation failed",
			Errors:  validationErr.Fields,
		})
		return
	}

	var conflictErr *errs.ConflictError
	if errors.As(err, &conflictErr) {
		h.RespondError(w, http.StatusConflict, conflictErr.Message)
		return
	}

	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, errs.ErrInvalidCredentials.Error())
	case errors.Is(err, errs.ErrUnauthenticated):
		h.RespondError(w, http.StatusUnauthorized, errs.ErrUnauthenticated.Error())
	case errors.Is(err, errs.ErrInvalidToken):
		h.RespondError(w, http.StatusUnauthorized, errs.ErrInvalidToken.Error())
	case errors.Is(err, errs.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "not found")
	default:
		h.Logger.Error("internal error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// AbsenceService is the interface that wraps methods for absence business logic.
type AbsenceService interface {
	// Method GetAll lists all absence records.
	GetAll(ctx context.Context) ([]models.Absence, error)
}

// AbsenceHandler handles absence HTTP requests
type AbsenceHandler struct {
	BaseHandler
	absenceService AbsenceService
}

// NewAbsenceHandler creates a new absence handler
func NewAbsenceHandler(absenceService AbsenceService, logger *zap.Logger) *AbsenceHandler {
	return &AbsenceHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		absenceService: absenceService,
	}
}

// RegisterRoutes registers all absence handler routes
func (h *AbsenceHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/absence", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetAll)
	})
}

// GetAll handles GET /api/absence
// @Summary List absence records
// @Tags absence
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Absence
// @Failure 500 {object} handlers.errorResponse
// @Router /absence [get]
func (h *AbsenceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	absences, err := h.absenceService.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, absences)
}

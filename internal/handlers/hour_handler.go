package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/middlewares"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// HourService is the interface that wraps methods for hours-record business logic.
type HourService interface {
	// Method GetAll lists hours records matching the filter.
	GetAll(ctx context.Context, filter *models.HourFilter) ([]models.Hour, error)
	// Method Create validates and inserts an hours record for the given user.
	Create(ctx context.Context, userID int, req *models.CreateHourRequest) (*models.Hour, error)
	// Method Update applies a partial update and returns the updated record.
	Update(ctx context.Context, id int, req *models.UpdateHourRequest) (*models.Hour, error)
	// Method Delete removes an hours record.
	//
	// Returns errs.ErrNotFound when no such record exists.
	Delete(ctx context.Context, id int) error
}

// HourHandler handles hours-record HTTP requests
type HourHandler struct {
	BaseHandler
	hourService HourService
}

// NewHourHandler creates a new hours handler
func NewHourHandler(hourService HourService, logger *zap.Logger) *HourHandler {
	return &HourHandler{
		BaseHandler: BaseHandler{Logger: logger},
		hourService: hourService,
	}
}

// RegisterRoutes registers all hours handler routes
func (h *HourHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/hours", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /api/hours
// @Summary List hours records
// @Tags hours
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "Filter by user"
// @Param projectId query int false "Filter by project"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} models.Hour
// @Failure 400 {object} handlers.errorResponse "Invalid filter"
// @Router /hours [get]
func (h *HourHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := &models.HourFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		filter.UserID = &userID
	}

	if projectIDStr := r.URL.Query().Get("projectId"); projectIDStr != "" {
		projectID, err := strconv.Atoi(projectIDStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid projectId")
			return
		}
		filter.ProjectID = &projectID
	}

	hours, err := h.hourService.GetAll(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, hours)
}

// Create handles POST /api/hours
// @Summary Record worked hours
// @Description Create an hours record for the authenticated user.
// @Tags hours
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateHourRequest true "Hours record"
// @Success 201 {object} models.Hour
// @Failure 400 {object} handlers.errorResponse "Validation failed"
// @Router /hours [post]
func (h *HourHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, errs.ErrUnauthenticated.Error())
		return
	}

	var req models.CreateHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hour, err := h.hourService.Create(r.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, hour)
}

// Update handles PATCH /api/hours/{id}
// @Summary Update an hours record
// @Tags hours
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Record ID"
// @Param request body models.UpdateHourRequest true "Fields to update"
// @Success 200 {object} models.Hour
// @Failure 404 {object} handlers.errorResponse "Record not found"
// @Router /hours/{id} [patch]
func (h *HourHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var req models.UpdateHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hour, err := h.hourService.Update(r.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, hour)
}

// Delete handles DELETE /api/hours/{id}
// @Summary Delete an hours record
// @Tags hours
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]string "Record deleted"
// @Failure 404 {object} handlers.errorResponse "Record not found"
// @Router /hours/{id} [delete]
func (h *HourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.hourService.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Record has been deleted"})
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// ReportService is the interface that wraps methods for aggregate reporting.
type ReportService interface {
	// Method HoursByUserProject sums worked hours grouped by user and project.
	HoursByUserProject(ctx context.Context, filter *models.ReportFilter) ([]models.UserProjectHours, error)
	// Method HoursByUser sums worked hours grouped by user.
	HoursByUser(ctx context.Context) ([]models.UserHours, error)
	// Method HoursByProject sums worked hours grouped by project.
	HoursByProject(ctx context.Context, filter *models.ReportFilter) ([]models.ProjectHours, error)
	// Method ProjectHoursDetail lists individual records for one project.
	ProjectHoursDetail(ctx context.Context, projectID int, filter *models.ReportFilter, userID *int) ([]models.HourDetail, error)
	// Method ProjectHoursByUser sums one project's worked hours grouped by user.
	ProjectHoursByUser(ctx context.Context, projectID int, filter *models.ReportFilter) ([]models.UserHours, error)
}

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		reportService: reportService,
	}
}

// RegisterRoutes registers all report handler routes
func (h *ReportHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/hours/by-user-project", h.HoursByUserProject)
		r.Get("/hours/by-user", h.HoursByUser)
		r.Get("/hours/by-project", h.HoursByProject)
		r.Get("/projects/{projectId}/hours", h.ProjectHoursDetail)
		r.Get("/projects/{projectId}/hours/by-user", h.ProjectHoursByUser)
	})
}

// filterFromQuery reads the optional from/to window off the query string
func filterFromQuery(r *http.Request) *models.ReportFilter {
	return &models.ReportFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
}

// HoursByUserProject handles GET /api/reports/hours/by-user-project
// @Summary Hours summed by user and project
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} models.UserProjectHours
// @Failure 500 {object} handlers.errorResponse "Error generating report"
// @Router /reports/hours/by-user-project [get]
func (h *ReportHandler) HoursByUserProject(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.HoursByUserProject(r.Context(), filterFromQuery(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// HoursByUser handles GET /api/reports/hours/by-user
// @Summary Hours summed by user
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserHours
// @Router /reports/hours/by-user [get]
func (h *ReportHandler) HoursByUser(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.HoursByUser(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// HoursByProject handles GET /api/reports/hours/by-project
// @Summary Hours summed by project
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} models.ProjectHours
// @Router /reports/hours/by-project [get]
func (h *ReportHandler) HoursByProject(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.HoursByProject(r.Context(), filterFromQuery(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// ProjectHoursDetail handles GET /api/reports/projects/{projectId}/hours
// @Summary Per-project hours detail
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param projectId path int true "Project ID"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param userId query int false "Filter by user"
// @Success 200 {array} models.HourDetail
// @Router /reports/projects/{projectId}/hours [get]
func (h *ReportHandler) ProjectHoursDetail(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(chi.URLParam(r, "projectId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var userID *int
	if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
		id, err := strconv.Atoi(userIDStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = &id
	}

	report, err := h.reportService.ProjectHoursDetail(r.Context(), projectID, filterFromQuery(r), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// ProjectHoursByUser handles GET /api/reports/projects/{projectId}/hours/by-user
// @Summary Per-project hours summed by user
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param projectId path int true "Project ID"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} models.UserHours
// @Router /reports/projects/{projectId}/hours/by-user [get]
func (h *ReportHandler) ProjectHoursByUser(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(chi.URLParam(r, "projectId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	report, err := h.reportService.ProjectHoursByUser(r.Context(), projectID, filterFromQuery(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// ProjectService is the interface that wraps methods for project business logic.
type ProjectService interface {
	// Method GetAll lists all projects.
	GetAll(ctx context.Context) ([]models.Project, error)
	// Method GetActive lists active, not-yet-ended projects.
	GetActive(ctx context.Context) ([]models.Project, error)
	// Method GetByID returns one project.
	//
	// Returns errs.ErrNotFound when no such project exists.
	GetByID(ctx context.Context, id int) (*models.Project, error)
	// Method Create validates and inserts a new project.
	Create(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error)
	// Method Update applies a partial update and returns the updated project.
	Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error)
	// Method Delete removes a project.
	//
	// Returns errs.ErrNotFound when no such project exists.
	Delete(ctx context.Context, id int) error
}

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		projectService: projectService,
	}
}

// RegisterRoutes registers all project handler routes. Reads require
// authentication; mutations additionally require the admin role.
func (h *ProjectHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/projects", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetAll)
		r.Get("/active", h.GetActive)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// GetAll handles GET /api/projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Project
// @Failure 500 {object} handlers.errorResponse
// @Router /projects [get]
func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, projects)
}

// GetActive handles GET /api/projects/active
// @Summary List active projects
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Project
// @Router /projects/active [get]
func (h *ProjectHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetActive(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, projects)
}

// GetByID handles GET /api/projects/{id}
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, project)
}

// Create handles POST /api/projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateProjectRequest true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} handlers.errorResponse "Validation failed"
// @Failure 409 {object} handlers.errorResponse "Project code already exists"
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, project)
}

// Update handles PATCH /api/projects/{id}
// @Summary Update a project
// @Description Partial update; omitted fields are untouched. Returns the updated row.
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Project ID"
// @Param request body models.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} models.Project
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projects/{id} [patch]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]string "Project deleted"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Project has been deleted"})
}

package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/middlewares"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// maxImageSize limits a single uploaded image to 5 MB
const maxImageSize = 5 << 20

// UploadService is the interface that wraps methods for project image uploads.
type UploadService interface {
	// Method UploadProjectImage stores an uploaded image and records its metadata.
	UploadProjectImage(ctx context.Context, projectCode string, uploadedBy int, reader io.Reader, originalFilename string) (*models.ProjectImage, error)
	// Method ProjectImages lists stored image metadata for a project.
	ProjectImages(ctx context.Context, projectCode string) ([]models.ProjectImage, error)
}

// UploadHandler handles project image upload HTTP requests
type UploadHandler struct {
	BaseHandler
	uploadService UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		uploadService: uploadService,
	}
}

// RegisterRoutes registers all upload handler routes
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/upload/projects/{projectCode}/images", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.UploadImage)
		r.Get("/", h.GetImages)
	})
}

// UploadImage handles POST /api/upload/projects/{projectCode}/images
// @Summary Upload a project image
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param projectCode path string true "Project code"
// @Param image formData file true "Image file"
// @Success 201 {object} models.ProjectImage
// @Failure 400 {object} handlers.errorResponse "Invalid or missing image"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /upload/projects/{projectCode}/images [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	projectCode := chi.URLParam(r, "projectCode")
	userID, ok := middlewares.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := h.uploadService.UploadProjectImage(r.Context(), projectCode, userID, file, header.Filename)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, image)
}

// GetImages handles GET /api/upload/projects/{projectCode}/images
// @Summary List project images
// @Tags upload
// @Produce json
// @Security ApiKeyAuth
// @Param projectCode path string true "Project code"
// @Success 200 {array} models.ProjectImage
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /upload/projects/{projectCode}/images [get]
func (h *UploadHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.uploadService.ProjectImages(r.Context(), chi.URLParam(r, "projectCode"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, images)
}

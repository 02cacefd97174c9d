package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
	"github.com/worklog/backend/internal/storage"
	"go.uber.org/zap"
)

// ProjectImageRepository is the interface that wraps methods for project_images table data access
type ProjectImageRepository interface {
	// Method Create inserts a new project image metadata row.
	Create(ctx context.Context, image *models.ProjectImage) error
	// Method GetByProjectID retrieves all image metadata rows for a project.
	GetByProjectID(ctx context.Context, projectID int) ([]models.ProjectImage, error)
}

// allowedImageExtensions is the accepted upload extension set
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadService implements UploadService
type uploadService struct {
	projectRepo ProjectRepository
	imageRepo   ProjectImageRepository
	store       storage.Storage
	logger      *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(projectRepo ProjectRepository, imageRepo ProjectImageRepository, store storage.Storage, logger *zap.Logger) *uploadService {
	return &uploadService{
		projectRepo: projectRepo,
		imageRepo:   imageRepo,
		store:       store,
		logger:      logger,
	}
}

// UploadProjectImage stores an uploaded image for the project identified by
// its code and records its metadata. The stored filename is generated, never
// taken from the client.
func (s *uploadService) UploadProjectImage(ctx context.Context, projectCode string, uploadedBy int, reader io.Reader, originalFilename string) (*models.ProjectImage, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedImageExtensions[ext] {
		validationErr := &errs.ValidationError{}
		validationErr.Add("image", "unsupported image type")
		return nil, validationErr
	}

	projectID, err := s.projectRepo.GetIDByCode(ctx, projectCode)
	if err != nil {
		return nil, err
	}

	filename := storage.GenerateFileName(ext)
	writer, err := s.store.Create(projectCode, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	image := &models.ProjectImage{
		ProjectID:  projectID,
		Filename:   filename,
		UploadedBy: uploadedBy,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Do not leave orphaned files behind when the metadata insert fails
		if removeErr := s.store.Delete(projectCode, filename); removeErr != nil {
			s.logger.Warn("failed to remove orphaned upload",
				zap.String("projectCode", projectCode),
				zap.String("filename", filename),
				zap.Error(removeErr),
			)
		}
		return nil, err
	}

	return image, nil
}

// ProjectImages lists stored image metadata for the project identified by its code.
func (s *uploadService) ProjectImages(ctx context.Context, projectCode string) ([]models.ProjectImage, error) {
	projectID, err := s.projectRepo.GetIDByCode(ctx, projectCode)
	if err != nil {
		return nil, err
	}

	return s.imageRepo.GetByProjectID(ctx, projectID)
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/worklog/backend/internal/models"
)

// projectImageRepository implements ProjectImageRepository
type projectImageRepository struct {
	db *sql.DB
}

// NewProjectImageRepository creates a new project image repository
func NewProjectImageRepository(db *sql.DB) *projectImageRepository {
	return &projectImageRepository{
		db: db,
	}
}

// Create inserts a new project image metadata row
func (r *projectImageRepository) Create(ctx context.Context, image *models.ProjectImage) error {
	query := `
		INSERT INTO project_images (project_id, filename, uploaded_by)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, image.ProjectID, image.Filename, image.UploadedBy)
	if err != nil {
		return fmt.Errorf("failed to create project image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	image.ID = int(id)
	return nil
}

// GetByProjectID retrieves all image metadata rows for a project
func (r *projectImageRepository) GetByProjectID(ctx context.Context, projectID int) ([]models.ProjectImage, error) {
	query := `
		SELECT id, project_id, filename, uploaded_by, created_at
		FROM project_images
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project images: %w", err)
	}
	defer rows.Close()

	images := []models.ProjectImage{}
	for rows.Next() {
		var image models.ProjectImage
		if err := rows.Scan(
			&image.ID,
			&image.ProjectID,
			&image.Filename,
			&image.UploadedBy,
			&image.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project images: %w", err)
	}

	return images, nil
}

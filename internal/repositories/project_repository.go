package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

const projectColumns = "id, project_code, name, description, status, total_hours, start_date, end_date"

// projectRepository implements ProjectRepository
type projectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

// GetAll retrieves all projects, most recently started first
func (r *projectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		ORDER BY COALESCE(start_date, '0001-01-01') DESC, id DESC
	`, projectColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// GetActive retrieves active projects that have not ended yet
func (r *projectRepository) GetActive(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE status = 'Active'
		  AND (end_date IS NULL OR end_date >= CURDATE())
		ORDER BY start_date DESC, id DESC
	`, projectColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// GetByID retrieves a project by ID
func (r *projectRepository) GetByID(ctx context.Context, id int) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE id = ?
		LIMIT 1
	`, projectColumns)

	project := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.ProjectCode,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.TotalHours,
		&project.StartDate,
		&project.EndDate,
	)

	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by id: %w", err)
	}

	return project, nil
}

// GetIDByCode resolves a project code to its ID
func (r *projectRepository) GetIDByCode(ctx context.Context, code string) (int, error) {
	query := `SELECT id FROM projects WHERE project_code = ? LIMIT 1`

	var id int
	err := r.db.QueryRowContext(ctx, query, code).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, errs.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get project id by code: %w", err)
	}

	return id, nil
}

// Create inserts a new project
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (project_code, name, description, status, total_hours, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		project.ProjectCode,
		project.Name,
		project.Description,
		project.Status,
		project.TotalHours,
		project.StartDate,
		project.EndDate,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return &errs.ConflictError{Message: "project code already exists"}
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	project.ID = int(id)
	return nil
}

// Update applies a partial update and returns the updated row
func (r *projectRepository) Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error) {
	sets := []string{}
	args := []any{}

	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.TotalHours != nil {
		sets = append(sets, "total_hours = ?")
		args = append(args, *req.TotalHours)
	}
	if req.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *req.StartDate)
	}
	if req.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *req.EndDate)
	}

	if len(sets) == 0 {
		validationErr := &errs.ValidationError{}
		validationErr.Add("body", "no fields to update")
		return nil, validationErr
	}

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguish "missing row" from "update to identical values"
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a project by ID
func (r *projectRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM projects WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// scanProjects reads all project rows
func scanProjects(rows *sql.Rows) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID,
			&project.ProjectCode,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.TotalHours,
			&project.StartDate,
			&project.EndDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

package services

import (
	"context"
	"strings"

	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

// ProjectRepository is the interface that wraps methods for projects table data access
type ProjectRepository interface {
	// Method GetAll retrieves all projects, most recently started first.
	GetAll(ctx context.Context) ([]models.Project, error)
	// Method GetActive retrieves active projects that have not ended yet.
	GetActive(ctx context.Context) ([]models.Project, error)
	// Method GetByID retrieves a project by ID.
	//
	// Returns errs.ErrNotFound when no such project exists.
	GetByID(ctx context.Context, id int) (*models.Project, error)
	// Method GetIDByCode resolves a project code to its ID.
	//
	// Returns errs.ErrNotFound when no such project exists.
	GetIDByCode(ctx context.Context, code string) (int, error)
	// Method Create inserts a new project.
	Create(ctx context.Context, project *models.Project) error
	// Method Update applies a partial update and returns the updated row.
	Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error)
	// Method Delete removes a project by ID.
	//
	// Returns errs.ErrNotFound when no such project exists.
	Delete(ctx context.Context, id int) error
}

// projectService implements ProjectService
type projectService struct {
	projectRepo ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ProjectRepository) *projectService {
	return &projectService{
		projectRepo: projectRepo,
	}
}

// GetAll lists all projects
func (s *projectService) GetAll(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

// GetActive lists active, not-yet-ended projects
func (s *projectService) GetActive(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.GetActive(ctx)
}

// GetByID returns one project
func (s *projectService) GetByID(ctx context.Context, id int) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Create validates and inserts a new project
func (s *projectService) Create(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.ProjectCode)

	validationErr := &errs.ValidationError{}
	if name == "" {
		validationErr.Add("name", "name is required")
	}
	if code == "" {
		validationErr.Add("projectCode", "project code is required")
	}
	if validationErr.HasErrors() {
		return nil, validationErr
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	project := &models.Project{
		ProjectCode: code,
		Name:        name,
		Description: req.Description,
		Status:      status,
		TotalHours:  req.TotalHours,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Update applies a partial update and returns the updated project
func (s *projectService) Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error) {
	return s.projectRepo.Update(ctx, id, req)
}

// Delete removes a project
func (s *projectService) Delete(ctx context.Context, id int) error {
	return s.projectRepo.Delete(ctx, id)
}

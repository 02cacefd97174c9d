package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

// mockProjectRepository is a mock implementation of ProjectRepository
type mockProjectRepository struct {
	projects  []models.Project
	project   *models.Project
	projectID int
	err       error
	created   *models.Project
}

func (m *mockProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectRepository) GetActive(ctx context.Context) ([]models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id int) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectRepository) GetIDByCode(ctx context.Context, code string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.projectID, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	project.ID = 1
	m.created = project
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, id int, req *models.UpdateProjectRequest) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func TestProjectService_Create(t *testing.T) {
	tests := []struct {
		name           string
		req            *models.CreateProjectRequest
		repo           *mockProjectRepository
		expectedError  bool
		conflict       bool
		expectedStatus string
	}{
		{
			name: "success with default status",
			req: &models.CreateProjectRequest{
				ProjectCode: "PRJ-001",
				Name:        "Alpha",
			},
			repo:           &mockProjectRepository{},
			expectedStatus: models.ProjectStatusActive,
		},
		{
			name: "success with explicit status",
			req: &models.CreateProjectRequest{
				ProjectCode: "PRJ-002",
				Name:        "Beta",
				Status:      models.ProjectStatusOnHold,
			},
			repo:           &mockProjectRepository{},
			expectedStatus: models.ProjectStatusOnHold,
		},
		{
			name: "missing name and code",
			req: &models.CreateProjectRequest{
				Name:        "  ",
				ProjectCode: "",
			},
			repo:          &mockProjectRepository{},
			expectedError: true,
		},
		{
			name: "duplicate project code",
			req: &models.CreateProjectRequest{
				ProjectCode: "PRJ-001",
				Name:        "Alpha",
			},
			repo: &mockProjectRepository{
				err: &errs.ConflictError{Message: "project code already exists"},
			},
			expectedError: true,
			conflict:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProjectService(tt.repo)

			project, err := svc.Create(context.Background(), tt.req)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, project)
				if tt.conflict {
					var conflictErr *errs.ConflictError
					assert.True(t, errors.As(err, &conflictErr))
				} else {
					var validationErr *errs.ValidationError
					assert.True(t, errors.As(err, &validationErr))
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, project)
				assert.Equal(t, 1, project.ID)
				assert.Equal(t, tt.expectedStatus, project.Status)
			}
		})
	}
}

func TestProjectService_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewProjectService(&mockProjectRepository{
			project: &models.Project{ID: 1, ProjectCode: "PRJ-001"},
		})

		project, err := svc.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "PRJ-001", project.ProjectCode)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewProjectService(&mockProjectRepository{err: errs.ErrNotFound})

		project, err := svc.GetByID(context.Background(), 999)

		assert.Nil(t, project)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestProjectService_Delete(t *testing.T) {
	svc := NewProjectService(&mockProjectRepository{err: errs.ErrNotFound})

	err := svc.Delete(context.Background(), 999)

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

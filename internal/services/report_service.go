package services

import (
	"context"

	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

// ReportRepository is the interface that wraps methods for aggregate report queries
type ReportRepository interface {
	// Method HoursByUserProject sums worked hours grouped by user and project.
	HoursByUserProject(ctx context.Context, filter *models.ReportFilter) ([]models.UserProjectHours, error)
	// Method HoursByUser sums worked hours grouped by user.
	HoursByUser(ctx context.Context) ([]models.UserHours, error)
	// Method HoursByProject sums worked hours grouped by project.
	HoursByProject(ctx context.Context, filter *models.ReportFilter) ([]models.ProjectHours, error)
	// Method ProjectHoursDetail lists individual records for one project,
	// optionally narrowed to one user.
	ProjectHoursDetail(ctx context.Context, projectID int, filter *models.ReportFilter, userID *int) ([]models.HourDetail, error)
	// Method ProjectHoursByUser sums one project's worked hours grouped by user.
	ProjectHoursByUser(ctx context.Context, projectID int, filter *models.ReportFilter) ([]models.UserHours, error)
}

// reportService implements ReportService
type reportService struct {
	reportRepo ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo ReportRepository) *reportService {
	return &reportService{
		reportRepo: reportRepo,
	}
}

// validateFilter rejects malformed date bounds before they reach SQL
func validateFilter(filter *models.ReportFilter) error {
	validationErr := &errs.ValidationError{}
	validateDateWindow(validationErr, filter.From, filter.To)
	if validationErr.HasErrors() {
		return validationErr
	}
	return nil
}

// HoursByUserProject sums worked hours grouped by user and project
func (s *reportService) HoursByUserProject(ctx context.Context, filter *models.ReportFilter) ([]models.UserProjectHours, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reportRepo.HoursByUserProject(ctx, filter)
}

// HoursByUser sums worked hours grouped by user
func (s *reportService) HoursByUser(ctx context.Context) ([]models.UserHours, error) {
	return s.reportRepo.HoursByUser(ctx)
}

// HoursByProject sums worked hours grouped by project
func (s *reportService) HoursByProject(ctx context.Context, filter *models.ReportFilter) ([]models.ProjectHours, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reportRepo.HoursByProject(ctx, filter)
}

// ProjectHoursDetail lists individual records for one project
func (s *reportService) ProjectHoursDetail(ctx context.Context, projectID int, filter *models.ReportFilter, userID *int) ([]models.HourDetail, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reportRepo.ProjectHoursDetail(ctx, projectID, filter, userID)
}

// ProjectHoursByUser sums one project's worked hours grouped by user
func (s *reportService) ProjectHoursByUser(ctx context.Context, projectID int, filter *models.ReportFilter) ([]models.UserHours, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reportRepo.ProjectHoursByUser(ctx, projectID, filter)
}

package services

import (
	"context"
	"regexp"

	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

// HourRepository is the interface that wraps methods for hours table data access
type HourRepository interface {
	// Method GetAll retrieves hours records matching the filter, newest first.
	GetAll(ctx context.Context, filter *models.HourFilter) ([]models.Hour, error)
	// Method GetByID retrieves an hours record by ID.
	//
	// Returns errs.ErrNotFound when no such record exists.
	GetByID(ctx context.Context, id int) (*models.Hour, error)
	// Method Create inserts a new hours record.
	Create(ctx context.Context, hour *models.Hour) error
	// Method Update applies a partial update and returns the updated row.
	Update(ctx context.Context, id int, req *models.UpdateHourRequest) (*models.Hour, error)
	// Method Delete removes an hours record by ID.
	//
	// Returns errs.ErrNotFound when no such record exists.
	Delete(ctx context.Context, id int) error
}

// hourService implements HourService
type hourService struct {
	hourRepo HourRepository
}

// NewHourService creates a new hours service
func NewHourService(hourRepo HourRepository) *hourService {
	return &hourService{
		hourRepo: hourRepo,
	}
}

// dateRegex matches inclusive YYYY-MM-DD filter bounds
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validateDateWindow records violations for malformed from/to bounds
func validateDateWindow(v *errs.ValidationError, from, to string) {
	if from != "" && !dateRegex.MatchString(from) {
		v.Add("from", "must be a YYYY-MM-DD date")
	}
	if to != "" && !dateRegex.MatchString(to) {
		v.Add("to", "must be a YYYY-MM-DD date")
	}
}

// GetAll lists hours records matching the filter
func (s *hourService) GetAll(ctx context.Context, filter *models.HourFilter) ([]models.Hour, error) {
	validationErr := &errs.ValidationError{}
	validateDateWindow(validationErr, filter.From, filter.To)
	if validationErr.HasErrors() {
		return nil, validationErr
	}

	return s.hourRepo.GetAll(ctx, filter)
}

// Create validates and inserts an hours record for the given user
func (s *hourService) Create(ctx context.Context, userID int, req *models.CreateHourRequest) (*models.Hour, error) {
	validationErr := &errs.ValidationError{}
	if req.ProjectID <= 0 {
		validationErr.Add("projectId", "project is required")
	}
	if req.StartTime.IsZero() {
		validationErr.Add("startTime", "start time is required")
	}
	if req.EndTime.IsZero() {
		validationErr.Add("endTime", "end time is required")
	} else if !req.EndTime.After(req.StartTime) {
		validationErr.Add("endTime", "end time must be after start time")
	}
	if req.BreakMinutes < 0 {
		validationErr.Add("breakMinutes", "break minutes cannot be negative")
	}
	if validationErr.HasErrors() {
		return nil, validationErr
	}

	hour := &models.Hour{
		UserID:       userID,
		ProjectID:    req.ProjectID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Note:         req.Note,
	}

	if err := s.hourRepo.Create(ctx, hour); err != nil {
		return nil, err
	}

	return hour, nil
}

// Update applies a partial update and returns the updated record
func (s *hourService) Update(ctx context.Context, id int, req *models.UpdateHourRequest) (*models.Hour, error) {
	validationErr := &errs.ValidationError{}
	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		validationErr.Add("endTime", "end time must be after start time")
	}
	if req.BreakMinutes != nil && *req.BreakMinutes < 0 {
		validationErr.Add("breakMinutes", "break minutes cannot be negative")
	}
	if validationErr.HasErrors() {
		return nil, validationErr
	}

	return s.hourRepo.Update(ctx, id, req)
}

// Delete removes an hours record
func (s *hourService) Delete(ctx context.Context, id int) error {
	return s.hourRepo.Delete(ctx, id)
}

package services

import (
	"context"

	"github.com/worklog/backend/internal/models"
)

// AbsenceRepository is the interface that wraps methods for absence table data access
type AbsenceRepository interface {
	// Method GetAll retrieves all absence records.
	GetAll(ctx context.Context) ([]models.Absence, error)
}

// absenceService implements AbsenceService
type absenceService struct {
	absenceRepo AbsenceRepository
}

// NewAbsenceService creates a new absence service
func NewAbsenceService(absenceRepo AbsenceRepository) *absenceService {
	return &absenceService{
		absenceRepo: absenceRepo,
	}
}

// GetAll lists all absence records
func (s *absenceService) GetAll(ctx context.Context) ([]models.Absence, error) {
	return s.absenceRepo.GetAll(ctx)
}

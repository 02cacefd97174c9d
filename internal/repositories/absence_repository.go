package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/worklog/backend/internal/models"
)

// absenceRepository implements AbsenceRepository
type absenceRepository struct {
	db *sql.DB
}

// NewAbsenceRepository creates a new absence repository
func NewAbsenceRepository(db *sql.DB) *absenceRepository {
	return &absenceRepository{
		db: db,
	}
}

// GetAll retrieves all absence records
func (r *absenceRepository) GetAll(ctx context.Context) ([]models.Absence, error) {
	query := `
		SELECT id, user_id, type, start_date, end_date, note
		FROM absence
		ORDER BY start_date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get absence list: %w", err)
	}
	defer rows.Close()

	absences := []models.Absence{}
	for rows.Next() {
		var absence models.Absence
		if err := rows.Scan(
			&absence.ID,
			&absence.UserID,
			&absence.Type,
			&absence.StartDate,
			&absence.EndDate,
			&absence.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, absence)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absences: %w", err)
	}

	return absences, nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
)

// hourRepository implements HourRepository
type hourRepository struct {
	db *sql.DB
}

// NewHourRepository creates a new hours repository
func NewHourRepository(db *sql.DB) *hourRepository {
	return &hourRepository{
		db: db,
	}
}

// GetAll retrieves hours records matching the filter, newest first
func (r *hourRepository) GetAll(ctx context.Context, filter *models.HourFilter) ([]models.Hour, error) {
	where := []string{}
	args := []any{}

	if filter.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.From != "" {
		where = append(where, "start_time >= ?")
		args = append(args, filter.From+" 00:00:00")
	}
	if filter.To != "" {
		where = append(where, "start_time < DATE_ADD(?, INTERVAL 1 DAY)")
		args = append(args, filter.To)
	}

	query := `
		SELECT id, user_id, project_id, start_time, end_time, break_minutes, note
		FROM hours
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_time DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get hours: %w", err)
	}
	defer rows.Close()

	hours := []models.Hour{}
	for rows.Next() {
		var hour models.Hour
		if err := rows.Scan(
			&hour.ID,
			&hour.UserID,
			&hour.ProjectID,
			&hour.StartTime,
			&hour.EndTime,
			&hour.BreakMinutes,
			&hour.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hour: %w", err)
		}
		hours = append(hours, hour)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hours: %w", err)
	}

	return hours, nil
}

// GetByID retrieves an hours record by ID
func (r *hourRepository) GetByID(ctx context.Context, id int) (*models.Hour, error) {
	query := `
		SELECT id, user_id, project_id, start_time, end_time, break_minutes, note
		FROM hours
		WHERE id = ?
		LIMIT 1
	`

	hour := &models.Hour{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&hour.ID,
		&hour.UserID,
		&hour.ProjectID,
		&hour.StartTime,
		&hour.EndTime,
		&hour.BreakMinutes,
		&hour.Note,
	)

	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hour by id: %w", err)
	}

	return hour, nil
}

// Create inserts a new hours record
func (r *hourRepository) Create(ctx context.Context, hour *models.Hour) error {
	query := `
		INSERT INTO hours (user_id, project_id, start_time, end_time, break_minutes, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		hour.UserID,
		hour.ProjectID,
		hour.StartTime,
		hour.EndTime,
		hour.BreakMinutes,
		hour.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to create hour: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	hour.ID = int(id)
	return nil
}

// Update applies a partial update and returns the updated row
func (r *hourRepository) Update(ctx context.Context, id int, req *models.UpdateHourRequest) (*models.Hour, error) {
	sets := []string{}
	args := []any{}

	if req.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *req.ProjectID)
	}
	if req.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, *req.StartTime)
	}
	if req.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, *req.EndTime)
	}
	if req.BreakMinutes != nil {
		sets = append(sets, "break_minutes = ?")
		args = append(args, *req.BreakMinutes)
	}
	if req.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *req.Note)
	}

	if len(sets) == 0 {
		validationErr := &errs.ValidationError{}
		validationErr.Add("body", "no fields to update")
		return nil, validationErr
	}

	query := fmt.Sprintf("UPDATE hours SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update hour: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes an hours record by ID
func (r *hourRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM hours WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete hour: %w", err)
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

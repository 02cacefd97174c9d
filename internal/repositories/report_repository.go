package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/worklog/backend/internal/models"
)

// hoursExpr computes worked hours for one record: the start/end span in
// minutes minus the break, converted to hours.
const hoursExpr = "(TIMESTAMPDIFF(MINUTE, h.start_time, h.end_time) - COALESCE(h.break_minutes, 0)) / 60"

// reportRepository implements ReportRepository
type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *reportRepository {
	return &reportRepository{
		db: db,
	}
}

// buildDateWindow turns an inclusive from/to date pair into WHERE clauses on
// h.start_time. The upper bound is exclusive of the day after "to" so the
// whole "to" day is included.
func buildDateWindow(filter *models.ReportFilter) ([]string, []any) {
	where := []string{}
	args := []any{}

	if filter.From != "" {
		where = append(where, "h.start_time >= ?")
		args = append(args, filter.From+" 00:00:00")
	}
	if filter.To != "" {
		where = append(where, "h.start_time < DATE_ADD(?, INTERVAL 1 DAY)")
		args = append(args, filter.To)
	}

	return where, args
}

// whereClause joins conditions into a WHERE clause, or returns "" when empty
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// HoursByUserProject sums worked hours grouped by user and project
func (r *reportRepository) HoursByUserProject(ctx context.Context, filter *models.ReportFilter) ([]models.UserProjectHours, error) {
	where, args := buildDateWindow(filter)

	query := fmt.Sprintf(`
		SELECT
			h.user_id,
			u.name AS user_name,
			h.project_id,
			p.name AS project_name,
			ROUND(SUM(%s), 2) AS total_hours
		FROM hours h
		JOIN users u ON u.id = h.user_id
		JOIN projects p ON p.id = h.project_id
		%s
		GROUP BY h.user_id, h.project_id
		ORDER BY user_name, project_name
	`, hoursExpr, whereClause(where))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hours by user and project: %w", err)
	}
	defer rows.Close()

	report := []models.UserProjectHours{}
	for rows.Next() {
		var row models.UserProjectHours
		if err := rows.Scan(&row.UserID, &row.UserName, &row.ProjectID, &row.ProjectName, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

// HoursByUser sums worked hours grouped by user
func (r *reportRepository) HoursByUser(ctx context.Context) ([]models.UserHours, error) {
	query := fmt.Sprintf(`
		SELECT
			h.user_id,
			u.name AS user_name,
			ROUND(SUM(%s), 2) AS total_hours
		FROM hours h
		JOIN users u ON u.id = h.user_id
		GROUP BY h.user_id
		ORDER BY user_name
	`, hoursExpr)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hours by user: %w", err)
	}
	defer rows.Close()

	report := []models.UserHours{}
	for rows.Next() {
		var row models.UserHours
		if err := rows.Scan(&row.UserID, &row.UserName, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

// HoursByProject sums worked hours grouped by project
func (r *reportRepository) HoursByProject(ctx context.Context, filter *models.ReportFilter) ([]models.ProjectHours, error) {
	where, args := buildDateWindow(filter)

	query := fmt.Sprintf(`
		SELECT
			h.project_id,
			p.name AS project_name,
			ROUND(SUM(%s), 2) AS total_hours
		FROM hours h
		JOIN projects p ON p.id = h.project_id
		%s
		GROUP BY h.project_id
		ORDER BY project_name
	`, hoursExpr, whereClause(where))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hours by project: %w", err)
	}
	defer rows.Close()

	report := []models.ProjectHours{}
	for rows.Next() {
		var row models.ProjectHours
		if err := rows.Scan(&row.ProjectID, &row.ProjectName, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

// ProjectHoursDetail lists individual records for one project, optionally
// narrowed to one user
func (r *reportRepository) ProjectHoursDetail(ctx context.Context, projectID int, filter *models.ReportFilter, userID *int) ([]models.HourDetail, error) {
	where, windowArgs := buildDateWindow(filter)
	args := []any{projectID}
	args = append(args, windowArgs...)

	userFilter := ""
	if userID != nil {
		userFilter = "AND h.user_id = ?"
		args = append(args, *userID)
	}

	extra := ""
	if len(where) > 0 {
		extra = "AND " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			h.id,
			h.user_id,
			u.name AS user_name,
			h.project_id,
			p.name AS project_name,
			h.start_time,
			h.end_time,
			COALESCE(h.break_minutes, 0),
			ROUND(%s, 2) AS hours_worked,
			h.note
		FROM hours h
		JOIN users u ON u.id = h.user_id
		JOIN projects p ON p.id = h.project_id
		WHERE h.project_id = ?
		%s
		%s
		ORDER BY h.start_time DESC, h.id DESC
	`, hoursExpr, extra, userFilter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project hours detail: %w", err)
	}
	defer rows.Close()

	report := []models.HourDetail{}
	for rows.Next() {
		var row models.HourDetail
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.UserName,
			&row.ProjectID,
			&row.ProjectName,
			&row.StartTime,
			&row.EndTime,
			&row.BreakMinutes,
			&row.HoursWorked,
			&row.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

// ProjectHoursByUser sums one project's worked hours grouped by user
func (r *reportRepository) ProjectHoursByUser(ctx context.Context, projectID int, filter *models.ReportFilter) ([]models.UserHours, error) {
	where, windowArgs := buildDateWindow(filter)
	args := []any{projectID}
	args = append(args, windowArgs...)

	extra := ""
	if len(where) > 0 {
		extra = "AND " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			h.user_id,
			u.name AS user_name,
			ROUND(SUM(%s), 2) AS total_hours
		FROM hours h
		JOIN users u ON u.id = h.user_id
		WHERE h.project_id = ?
		%s
		GROUP BY h.user_id
		ORDER BY user_name
	`, hoursExpr, extra)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project hours by user: %w", err)
	}
	defer rows.Close()

	report := []models.UserHours{}
	for rows.Next() {
		var row models.UserHours
		if err := rows.Scan(&row.UserID, &row.UserName, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

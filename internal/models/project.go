package models

import "time"

// Project statuses
const (
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCompleted = "Completed"
)

// Project represents a tracked project
type Project struct {
	ID          int        `json:"id"`
	ProjectCode string     `json:"projectCode"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	TotalHours  *float64   `json:"totalHours"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateProjectRequest is the project creation payload
type CreateProjectRequest struct {
	ProjectCode string     `json:"projectCode"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	TotalHours  *float64   `json:"totalHours"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// UpdateProjectRequest is the partial-update payload; nil fields are untouched
type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	TotalHours  *float64   `json:"totalHours"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

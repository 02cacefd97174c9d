package models

import "time"

// Hour represents a single worked-hours record
type Hour struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	ProjectID    int       `json:"projectId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	BreakMinutes int       `json:"breakMinutes"`
	Note         *string   `json:"note"`
}

// CreateHourRequest is the hours-record creation payload. The user is always
// the authenticated caller.
type CreateHourRequest struct {
	ProjectID    int       `json:"projectId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	BreakMinutes int       `json:"breakMinutes"`
	Note         *string   `json:"note"`
}

// UpdateHourRequest is the partial-update payload; nil fields are untouched
type UpdateHourRequest struct {
	ProjectID    *int       `json:"projectId"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	BreakMinutes *int       `json:"breakMinutes"`
	Note         *string    `json:"note"`
}

// HourFilter narrows a hours listing
type HourFilter struct {
	UserID    *int
	ProjectID *int
	From      string
	To        string
}

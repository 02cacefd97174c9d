package models

import "time"

// UserProjectHours is one row of the hours-by-user-and-project summary
type UserProjectHours struct {
	UserID      int     `json:"userId"`
	UserName    string  `json:"userName"`
	ProjectID   int     `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalHours  float64 `json:"totalHours"`
}

// UserHours is one row of the hours-by-user summary
type UserHours struct {
	UserID     int     `json:"userId"`
	UserName   string  `json:"userName"`
	TotalHours float64 `json:"totalHours"`
}

// ProjectHours is one row of the hours-by-project summary
type ProjectHours struct {
	ProjectID   int     `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalHours  float64 `json:"totalHours"`
}

// HourDetail is one row of the per-project detail report
type HourDetail struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	UserName     string    `json:"userName"`
	ProjectID    int       `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	BreakMinutes int       `json:"breakMinutes"`
	HoursWorked  float64   `json:"hoursWorked"`
	Note         *string   `json:"note"`
}

// ReportFilter is the optional date window applied to report queries.
// From and To are inclusive YYYY-MM-DD dates.
type ReportFilter struct {
	From string
	To   string
}

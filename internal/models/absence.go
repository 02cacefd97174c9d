package models

import "time"

// Absence represents an absence record (vacation, sick leave, ...)
type Absence struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Type      string    `json:"type"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Note      *string   `json:"note"`
}

package models

import "time"

// ProjectImage is the stored metadata of an uploaded project image
type ProjectImage struct {
	ID         int       `json:"id"`
	ProjectID  int       `json:"projectId"`
	Filename   string    `json:"filename"`
	UploadedBy int       `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

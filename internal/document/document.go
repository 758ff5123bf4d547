package document

import (
	"time"
)

const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
)

// Document is a paperwork item an employee has to hand in. Upload is a URL
// patch; actual byte storage lives outside this service.
type Document struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	TaskID     *int64     `json:"task_id,omitempty" gorm:"column:task_id"`
	Name       string     `json:"name" gorm:"column:name;not null"`
	FileURL    *string    `json:"file_url,omitempty" gorm:"column:file_url"`
	Status     string     `json:"status" gorm:"column:status;not null;default:PENDING"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty" gorm:"column:uploaded_at"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

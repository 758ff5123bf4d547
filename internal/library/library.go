package library

import (
	"time"
)

const (
	ResourceTypeLink     = "LINK"
	ResourceTypeDocument = "DOCUMENT"
	ResourceTypeVideo    = "VIDEO"
)

// Resource is a knowledge-base entry surfaced to every employee.
type Resource struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"column:title;not null"`
	Description  *string   `json:"description,omitempty" gorm:"column:description"`
	Category     *string   `json:"category,omitempty" gorm:"column:category"`
	URL          string    `json:"url" gorm:"column:url;not null"`
	ResourceType string    `json:"resource_type" gorm:"column:resource_type;not null;default:LINK"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Resource) TableName() string {
	return "library_resources"
}

package policy

import (
	"time"
)

// Policy is a company document employees acknowledge.
type Policy struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Content   string    `json:"content" gorm:"column:content;not null"`
	Category  *string   `json:"category,omitempty" gorm:"column:category"`
	Version   int       `json:"version" gorm:"column:version;not null;default:1"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Policy) TableName() string {
	return "policies"
}

// Acceptance is an append-only audit record. Rows are never updated or
// deleted; re-accepting after a policy change appends another row.
type Acceptance struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	PolicyID      int64     `json:"policy_id" gorm:"column:policy_id;not null;index"`
	UserID        int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	PolicyVersion int       `json:"policy_version" gorm:"column:policy_version;not null"`
	IPAddress     string    `json:"ip_address" gorm:"column:ip_address"`
	UserAgent     string    `json:"user_agent" gorm:"column:user_agent"`
	AcceptedAt    time.Time `json:"accepted_at" gorm:"column:accepted_at"`
}

func (Acceptance) TableName() string {
	return "user_policy_acceptances"
}

// PolicyWithAcceptance is the employee-facing list row.
type PolicyWithAcceptance struct {
	Policy
	Accepted   bool       `json:"accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

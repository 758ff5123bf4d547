package notification

import (
	"time"
)

const (
	TypeOnboardingAssigned  = "ONBOARDING_ASSIGNED"
	TypeOnboardingCompleted = "ONBOARDING_COMPLETED"
	TypeTaskCompleted       = "TASK_COMPLETED"
	TypeBuddyAssigned       = "BUDDY_ASSIGNED"
	TypeEventReminder       = "EVENT_REMINDER"
	TypeWelcome             = "WELCOME"
	TypePolicyAccepted      = "POLICY_ACCEPTED"
	TypeFeedbackReceived    = "FEEDBACK_RECEIVED"
)

// Notification is one in-app inbox entry. Rows are produced by event-bus
// subscribers, never directly by request handlers.
type Notification struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Message   string    `json:"message" gorm:"column:message;not null"`
	Type      string    `json:"type" gorm:"column:type;not null"`
	IsRead    bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

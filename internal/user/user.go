package user

import (
	"time"
)

// User is an employee account. Role, department and job title hold catalog
// codes, not foreign keys, so catalog rows stay deletable only while unused.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Name         string     `json:"name" gorm:"column:name;not null"`
	Role         string     `json:"role" gorm:"column:role;not null"`
	Department   *string    `json:"department,omitempty" gorm:"column:department"`
	JobTitle     *string    `json:"job_title,omitempty" gorm:"column:job_title"`
	Phone        *string    `json:"phone,omitempty" gorm:"column:phone"`
	StartDate    *time.Time `json:"start_date,omitempty" gorm:"column:start_date"`
	ManagerID    *int64     `json:"manager_id,omitempty" gorm:"column:manager_id"`
	BuddyID      *int64     `json:"buddy_id,omitempty" gorm:"column:buddy_id"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserWithOnboarding is the admin list row: the account plus a summary of
// its active onboarding, when one exists.
type UserWithOnboarding struct {
	User
	OnboardingStatus   *string `json:"onboarding_status,omitempty"`
	OnboardingProgress *int    `json:"onboarding_progress,omitempty"`
}

// Manager is the slim shape used to populate manager/buddy pickers.
type Manager struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

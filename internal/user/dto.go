package user

import (
	"strings"
	"time"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

const dateLayout = "2006-01-02"

type CreateUserDTO struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
	JobTitle   *string `json:"job_title,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	ManagerID  *int64  `json:"manager_id,omitempty"`
	BuddyID    *int64  `json:"buddy_id,omitempty"`
	TemplateID *int64  `json:"template_id,omitempty"`
}

func (d *CreateUserDTO) Validate() error {
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return internal_errors.NewValidationFieldError("email", "a valid email is required", internal_errors.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal_errors.NewValidationFieldError("password", "password must be at least 8 characters", internal_errors.ErrCodeValidationFailed)
	}
	if d.Name == "" {
		return internal_errors.NewValidationFieldError("name", "name is required", internal_errors.ErrCodeMissingField)
	}
	if d.Role == "" {
		return internal_errors.NewValidationFieldError("role", "role is required", internal_errors.ErrCodeMissingField)
	}
	if d.StartDate != nil {
		if _, err := time.Parse(dateLayout, *d.StartDate); err != nil {
			return internal_errors.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal_errors.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *CreateUserDTO) ParsedStartDate() *time.Time {
	if d.StartDate == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *d.StartDate)
	if err != nil {
		return nil
	}
	return &t
}

type UpdateUserDTO struct {
	Email      *string `json:"email,omitempty"`
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	JobTitle   *string `json:"job_title,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	ManagerID  *int64  `json:"manager_id,omitempty"`
	BuddyID    *int64  `json:"buddy_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return internal_errors.NewValidationFieldError("email", "a valid email is required", internal_errors.ErrCodeValidationFailed)
	}
	if d.Name != nil && *d.Name == "" {
		return internal_errors.NewValidationFieldError("name", "name cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.StartDate != nil {
		if _, err := time.Parse(dateLayout, *d.StartDate); err != nil {
			return internal_errors.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal_errors.ErrCodeInvalidDate)
		}
	}
	return nil
}

type AssignTemplateDTO struct {
	TemplateID int64 `json:"template_id"`
}

func (d *AssignTemplateDTO) Validate() error {
	if d.TemplateID <= 0 {
		return internal_errors.NewValidationFieldError("template_id", "template_id is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

package onboarding

import (
	"time"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateTemplateDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
}

func (d *CreateTemplateDTO) Validate() error {
	if d.Name == "" {
		return internal_errors.NewValidationFieldError("name", "name is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type UpdateTemplateDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d *UpdateTemplateDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return internal_errors.NewValidationFieldError("name", "name cannot be empty", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type CreateTemplateTaskDTO struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Category     string  `json:"category"`
	AssigneeRole *string `json:"assignee_role,omitempty"`
	DueDayOffset int     `json:"due_day_offset"`
	SortOrder    int     `json:"sort_order"`
}

func (d *CreateTemplateTaskDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.DueDayOffset < 0 {
		return internal_errors.NewValidationFieldError("due_day_offset", "due_day_offset cannot be negative", internal_errors.ErrCodeValidationFailed)
	}
	if d.Category == "" {
		d.Category = TaskCategoryGeneral
	}
	return nil
}

type UpdateTemplateTaskDTO struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	AssigneeRole *string `json:"assignee_role,omitempty"`
	DueDayOffset *int    `json:"due_day_offset,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
}

func (d *UpdateTemplateTaskDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.DueDayOffset != nil && *d.DueDayOffset < 0 {
		return internal_errors.NewValidationFieldError("due_day_offset", "due_day_offset cannot be negative", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateTaskStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateTaskStatusDTO) Validate() error {
	if !ValidTaskStatus(d.Status) {
		return internal_errors.NewValidationFieldError("status", "unknown task status", internal_errors.ErrCodeInvalidStatus)
	}
	return nil
}

type AdminCreateTaskDTO struct {
	UserID       int64   `json:"user_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Category     string  `json:"category"`
	AssigneeRole *string `json:"assignee_role,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
}

func (d *AdminCreateTaskDTO) Validate() error {
	if d.UserID <= 0 {
		return internal_errors.NewValidationFieldError("user_id", "user_id is required", internal_errors.ErrCodeMissingField)
	}
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.Category == "" {
		d.Category = TaskCategoryGeneral
	}
	if d.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *d.DueDate); err != nil {
			return internal_errors.NewValidationFieldError("due_date", "due_date must be YYYY-MM-DD", internal_errors.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *AdminCreateTaskDTO) ParsedDueDate() *time.Time {
	if d.DueDate == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *d.DueDate)
	if err != nil {
		return nil
	}
	return &t
}

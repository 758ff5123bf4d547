package policy

import (
	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreatePolicyDTO struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category *string `json:"category,omitempty"`
}

func (d *CreatePolicyDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.Content == "" {
		return internal_errors.NewValidationFieldError("content", "content is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type UpdatePolicyDTO struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (d *UpdatePolicyDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.Content != nil && *d.Content == "" {
		return internal_errors.NewValidationFieldError("content", "content cannot be empty", internal_errors.ErrCodeMissingField)
	}
	return nil
}

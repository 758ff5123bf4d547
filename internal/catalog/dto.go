package catalog

import (
	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateEntryDTO struct {
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (d *CreateEntryDTO) Validate() error {
	if d.Code == "" {
		return internal_errors.NewValidationFieldError("code", "code is required", internal_errors.ErrCodeMissingField)
	}
	if !ValidCode(d.Code) {
		return internal_errors.NewValidationFieldError("code", "code must contain only uppercase letters and underscores", internal_errors.ErrCodeInvalidCode)
	}
	if d.Label == "" {
		return internal_errors.NewValidationFieldError("label", "label is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type UpdateEntryDTO struct {
	Code        *string `json:"code,omitempty"`
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d *UpdateEntryDTO) Validate() error {
	if d.Code != nil && !ValidCode(*d.Code) {
		return internal_errors.NewValidationFieldError("code", "code must contain only uppercase letters and underscores", internal_errors.ErrCodeInvalidCode)
	}
	if d.Label != nil && *d.Label == "" {
		return internal_errors.NewValidationFieldError("label", "label cannot be empty", internal_errors.ErrCodeMissingField)
	}
	return nil
}

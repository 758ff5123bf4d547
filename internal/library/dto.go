package library

import (
	"strings"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateResourceDTO struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	URL          string  `json:"url"`
	ResourceType string  `json:"resource_type"`
}

func (d *CreateResourceDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if !strings.HasPrefix(d.URL, "http://") && !strings.HasPrefix(d.URL, "https://") {
		return internal_errors.NewValidationFieldError("url", "url must be http(s)", internal_errors.ErrCodeValidationFailed)
	}
	if d.ResourceType == "" {
		d.ResourceType = ResourceTypeLink
	}
	return nil
}

type UpdateResourceDTO struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	URL          *string `json:"url,omitempty"`
	ResourceType *string `json:"resource_type,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (d *UpdateResourceDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.URL != nil && !strings.HasPrefix(*d.URL, "http://") && !strings.HasPrefix(*d.URL, "https://") {
		return internal_errors.NewValidationFieldError("url", "url must be http(s)", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

package feedback

import (
	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateFeedbackDTO struct {
	Category *string `json:"category,omitempty"`
	Message  string  `json:"message"`
}

func (d *CreateFeedbackDTO) Validate() error {
	if d.Message == "" {
		return internal_errors.NewValidationFieldError("message", "message is required", internal_errors.ErrCodeMissingField)
	}
	if len(d.Message) > 4000 {
		return internal_errors.NewValidationFieldError("message", "message is too long", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

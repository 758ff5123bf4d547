package document

import (
	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateDocumentDTO struct {
	UserID int64  `json:"user_id"`
	TaskID *int64 `json:"task_id,omitempty"`
	Name   string `json:"name"`
}

func (d *CreateDocumentDTO) Validate() error {
	if d.UserID <= 0 {
		return internal_errors.NewValidationFieldError("user_id", "user_id is required", internal_errors.ErrCodeMissingField)
	}
	if d.Name == "" {
		return internal_errors.NewValidationFieldError("name", "name is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type UploadDocumentDTO struct {
	FileURL string `json:"file_url"`
}

func (d *UploadDocumentDTO) Validate() error {
	if d.FileURL == "" {
		return internal_errors.NewValidationFieldError("file_url", "file_url is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

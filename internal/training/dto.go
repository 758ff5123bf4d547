package training

import (
	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateCourseDTO struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	IsMandatory     bool    `json:"is_mandatory"`
}

func (d *CreateCourseDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.DurationMinutes < 0 {
		return internal_errors.NewValidationFieldError("duration_minutes", "duration_minutes cannot be negative", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateCourseDTO struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	IsMandatory     *bool   `json:"is_mandatory,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (d *UpdateCourseDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type CreateModuleDTO struct {
	Title     string  `json:"title"`
	Content   *string `json:"content,omitempty"`
	SortOrder int     `json:"sort_order"`
}

func (d *CreateModuleDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type UpdateModuleDTO struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

func (d *UpdateModuleDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type QuizQuestionDTO struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type SetQuizDTO struct {
	Title        string            `json:"title"`
	PassingScore int               `json:"passing_score"`
	Questions    []QuizQuestionDTO `json:"questions"`
}

func (d *SetQuizDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.PassingScore <= 0 || d.PassingScore > 100 {
		d.PassingScore = 70
	}
	if len(d.Questions) == 0 {
		return internal_errors.NewValidationFieldError("questions", "at least one question is required", internal_errors.ErrCodeMissingField)
	}
	for _, q := range d.Questions {
		if q.Question == "" {
			return internal_errors.NewValidationFieldError("questions", "question text is required", internal_errors.ErrCodeMissingField)
		}
		if len(q.Options) < 2 {
			return internal_errors.NewValidationFieldError("questions", "each question needs at least two options", internal_errors.ErrCodeValidationFailed)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return internal_errors.NewValidationFieldError("questions", "correct_index out of range", internal_errors.ErrCodeValidationFailed)
		}
	}
	return nil
}

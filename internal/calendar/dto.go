package calendar

import (
	"time"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

type CreateEventTemplateDTO struct {
	Title                 string  `json:"title"`
	Description           *string `json:"description,omitempty"`
	Role                  *string `json:"role,omitempty"`
	EventType             string  `json:"event_type"`
	DayOffset             int     `json:"day_offset"`
	StartHour             int     `json:"start_hour"`
	StartMinute           int     `json:"start_minute"`
	DurationMinutes       int     `json:"duration_minutes"`
	Location              *string `json:"location,omitempty"`
	ReminderMinutesBefore int     `json:"reminder_minutes_before"`
	Mandatory             bool    `json:"mandatory"`
}

func (d *CreateEventTemplateDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if d.DayOffset < 0 {
		return internal_errors.NewValidationFieldError("day_offset", "day_offset cannot be negative", internal_errors.ErrCodeValidationFailed)
	}
	if d.StartHour < 0 || d.StartHour > 23 {
		return internal_errors.NewValidationFieldError("start_hour", "start_hour must be between 0 and 23", internal_errors.ErrCodeValidationFailed)
	}
	if d.StartMinute < 0 || d.StartMinute > 59 {
		return internal_errors.NewValidationFieldError("start_minute", "start_minute must be between 0 and 59", internal_errors.ErrCodeValidationFailed)
	}
	if d.DurationMinutes <= 0 {
		d.DurationMinutes = 60
	}
	if d.EventType == "" {
		d.EventType = EventTypeMeeting
	}
	if d.ReminderMinutesBefore <= 0 {
		d.ReminderMinutesBefore = 30
	}
	return nil
}

type UpdateEventTemplateDTO struct {
	Title                 *string `json:"title,omitempty"`
	Description           *string `json:"description,omitempty"`
	Role                  *string `json:"role,omitempty"`
	EventType             *string `json:"event_type,omitempty"`
	DayOffset             *int    `json:"day_offset,omitempty"`
	StartHour             *int    `json:"start_hour,omitempty"`
	StartMinute           *int    `json:"start_minute,omitempty"`
	DurationMinutes       *int    `json:"duration_minutes,omitempty"`
	Location              *string `json:"location,omitempty"`
	ReminderMinutesBefore *int    `json:"reminder_minutes_before,omitempty"`
	Mandatory             *bool   `json:"mandatory,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`
}

func (d *UpdateEventTemplateDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.DayOffset != nil && *d.DayOffset < 0 {
		return internal_errors.NewValidationFieldError("day_offset", "day_offset cannot be negative", internal_errors.ErrCodeValidationFailed)
	}
	if d.StartHour != nil && (*d.StartHour < 0 || *d.StartHour > 23) {
		return internal_errors.NewValidationFieldError("start_hour", "start_hour must be between 0 and 23", internal_errors.ErrCodeValidationFailed)
	}
	if d.StartMinute != nil && (*d.StartMinute < 0 || *d.StartMinute > 59) {
		return internal_errors.NewValidationFieldError("start_minute", "start_minute must be between 0 and 59", internal_errors.ErrCodeValidationFailed)
	}
	if d.DurationMinutes != nil && *d.DurationMinutes <= 0 {
		return internal_errors.NewValidationFieldError("duration_minutes", "duration_minutes must be positive", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

type ApplyTemplatesDTO struct {
	UserID int64 `json:"user_id"`
}

func (d *ApplyTemplatesDTO) Validate() error {
	if d.UserID <= 0 {
		return internal_errors.NewValidationFieldError("user_id", "user_id is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type CreateEventDTO struct {
	Title                 string  `json:"title"`
	Description           *string `json:"description,omitempty"`
	EventType             string  `json:"event_type"`
	StartTime             string  `json:"start_time"`
	DurationMinutes       int     `json:"duration_minutes"`
	Location              *string `json:"location,omitempty"`
	ReminderMinutesBefore int     `json:"reminder_minutes_before"`
}

func (d *CreateEventDTO) Validate() error {
	if d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title is required", internal_errors.ErrCodeMissingField)
	}
	if _, err := time.Parse(time.RFC3339, d.StartTime); err != nil {
		return internal_errors.NewValidationFieldError("start_time", "start_time must be RFC3339", internal_errors.ErrCodeInvalidDate)
	}
	if d.DurationMinutes <= 0 {
		d.DurationMinutes = 60
	}
	if d.EventType == "" {
		d.EventType = EventTypeMeeting
	}
	if d.ReminderMinutesBefore <= 0 {
		d.ReminderMinutesBefore = 30
	}
	return nil
}

func (d *CreateEventDTO) ParsedStartTime() time.Time {
	t, _ := time.Parse(time.RFC3339, d.StartTime)
	return t
}

type UpdateEventDTO struct {
	Title                 *string `json:"title,omitempty"`
	Description           *string `json:"description,omitempty"`
	EventType             *string `json:"event_type,omitempty"`
	StartTime             *string `json:"start_time,omitempty"`
	DurationMinutes       *int    `json:"duration_minutes,omitempty"`
	Location              *string `json:"location,omitempty"`
	ReminderMinutesBefore *int    `json:"reminder_minutes_before,omitempty"`
	Completed             *bool   `json:"completed,omitempty"`
}

func (d *UpdateEventDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal_errors.NewValidationFieldError("title", "title cannot be empty", internal_errors.ErrCodeMissingField)
	}
	if d.StartTime != nil {
		if _, err := time.Parse(time.RFC3339, *d.StartTime); err != nil {
			return internal_errors.NewValidationFieldError("start_time", "start_time must be RFC3339", internal_errors.ErrCodeInvalidDate)
		}
	}
	if d.DurationMinutes != nil && *d.DurationMinutes <= 0 {
		return internal_errors.NewValidationFieldError("duration_minutes", "duration_minutes must be positive", internal_errors.ErrCodeValidationFailed)
	}
	return nil
}

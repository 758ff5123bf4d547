package calendar

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"github.com/frahmantamala/onboarding-management/internal/user"
)

type RepositoryAPI interface {
	GetEventTemplates() ([]EventTemplate, error)
	GetEventTemplateByID(id int64) (*EventTemplate, error)
	GetActiveTemplatesForRole(role string) ([]EventTemplate, error)
	CreateEventTemplate(t *EventTemplate) error
	UpdateEventTemplate(t *EventTemplate) error
	DeleteEventTemplate(id int64) error

	GetEventsByUserID(userID int64) ([]Event, error)
	GetEventByID(id int64) (*Event, error)
	CreateEvent(ev *Event) error
	CreateEvents(evs []Event) error
	UpdateEvent(ev *Event) error
	DeleteEvent(id int64) error

	// ReplaceEvents swaps the user's whole schedule in one transaction and
	// returns how many events were dropped.
	ReplaceEvents(userID int64, evs []Event) (deleted int, err error)

	GetPendingReminders(from, to time.Time) ([]Event, error)
	MarkReminderSent(id int64) error
}

type UserDirectory interface {
	Get(id int64) (*user.User, error)
}

type Service struct {
	repo     RepositoryAPI
	users    UserDirectory
	eventBus *events.EventBus
	google   ProviderSyncer
	outlook  ProviderSyncer
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, eventBus *events.EventBus, google, outlook ProviderSyncer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		eventBus: eventBus,
		google:   google,
		outlook:  outlook,
		logger:   logger.With("component", "calendar_service"),
	}
}

// --- event templates ---

func (s *Service) ListTemplates() ([]EventTemplate, error) {
	templates, err := s.repo.GetEventTemplates()
	if err != nil {
		s.logger.Error("failed to list event templates", "error", err)
		return nil, internal.NewInternalError("failed to list event templates", err)
	}
	return templates, nil
}

func (s *Service) GetTemplate(id int64) (*EventTemplate, error) {
	tpl, err := s.repo.GetEventTemplateByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("event template not found", internal.ErrCodeTemplateNotFound)
		}
		return nil, internal.NewInternalError("failed to get event template", err)
	}
	return tpl, nil
}

func (s *Service) CreateTemplate(dto CreateEventTemplateDTO) (*EventTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	tpl := &EventTemplate{
		Title:                 dto.Title,
		Description:           dto.Description,
		Role:                  dto.Role,
		EventType:             dto.EventType,
		DayOffset:             dto.DayOffset,
		StartHour:             dto.StartHour,
		StartMinute:           dto.StartMinute,
		DurationMinutes:       dto.DurationMinutes,
		Location:              dto.Location,
		ReminderMinutesBefore: dto.ReminderMinutesBefore,
		Mandatory:             dto.Mandatory,
		IsActive:              true,
	}
	if err := s.repo.CreateEventTemplate(tpl); err != nil {
		s.logger.Error("failed to create event template", "title", dto.Title, "error", err)
		return nil, internal.NewInternalError("failed to create event template", err)
	}
	s.logger.Info("event template created", "template_id", tpl.ID, "title", tpl.Title)
	return tpl, nil
}

func (s *Service) UpdateTemplate(id int64, dto UpdateEventTemplateDTO) (*EventTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	tpl, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		tpl.Title = *dto.Title
	}
	if dto.Description != nil {
		tpl.Description = dto.Description
	}
	if dto.Role != nil {
		tpl.Role = dto.Role
	}
	if dto.EventType != nil {
		tpl.EventType = *dto.EventType
	}
	if dto.DayOffset != nil {
		tpl.DayOffset = *dto.DayOffset
	}
	if dto.StartHour != nil {
		tpl.StartHour = *dto.StartHour
	}
	if dto.StartMinute != nil {
		tpl.StartMinute = *dto.StartMinute
	}
	if dto.DurationMinutes != nil {
		tpl.DurationMinutes = *dto.DurationMinutes
	}
	if dto.Location != nil {
		tpl.Location = dto.Location
	}
	if dto.ReminderMinutesBefore != nil {
		tpl.ReminderMinutesBefore = *dto.ReminderMinutesBefore
	}
	if dto.Mandatory != nil {
		tpl.Mandatory = *dto.Mandatory
	}
	if dto.IsActive != nil {
		tpl.IsActive = *dto.IsActive
	}
	if err := s.repo.UpdateEventTemplate(tpl); err != nil {
		return nil, internal.NewInternalError("failed to update event template", err)
	}
	return tpl, nil
}

func (s *Service) DeleteTemplate(id int64) error {
	if _, err := s.GetTemplate(id); err != nil {
		return err
	}
	if err := s.repo.DeleteEventTemplate(id); err != nil {
		return internal.NewInternalError("failed to delete event template", err)
	}
	return nil
}

// --- propagation ---

func (s *Service) materializeForUser(userID int64) ([]Event, error) {
	u, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	templates, err := s.repo.GetActiveTemplatesForRole(u.Role)
	if err != nil {
		return nil, internal.NewInternalError("failed to load event templates", err)
	}

	startDate := time.Now()
	if u.StartDate != nil {
		startDate = *u.StartDate
	}

	return MaterializeEvents(userID, templates, startDate), nil
}

// ApplyEventTemplates adds template events on top of whatever the user
// already has scheduled.
func (s *Service) ApplyEventTemplates(ctx context.Context, userID int64) (int, error) {
	evs, err := s.materializeForUser(userID)
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateEvents(evs); err != nil {
		s.logger.Error("failed to apply event templates", "user_id", userID, "error", err)
		return 0, internal.NewInternalError("failed to apply event templates", err)
	}
	s.logger.Info("event templates applied", "user_id", userID, "created_events", len(evs))
	return len(evs), nil
}

// RecreateCalendar wipes the user's schedule and rebuilds it from the
// active templates, reporting the destructive diff.
func (s *Service) RecreateCalendar(ctx context.Context, userID int64) (deleted, created int, err error) {
	evs, err := s.materializeForUser(userID)
	if err != nil {
		return 0, 0, err
	}
	deleted, err = s.repo.ReplaceEvents(userID, evs)
	if err != nil {
		s.logger.Error("failed to recreate calendar", "user_id", userID, "error", err)
		return 0, 0, internal.NewInternalError("failed to recreate calendar", err)
	}
	s.logger.Info("calendar recreated",
		"user_id", userID, "deleted_events", deleted, "created_events", len(evs))
	return deleted, len(evs), nil
}

// --- events ---

func (s *Service) ListForUser(userID int64) ([]Event, error) {
	evs, err := s.repo.GetEventsByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list events", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list events", err)
	}
	return evs, nil
}

func (s *Service) getOwned(actor *internal.SessionUser, id int64) (*Event, error) {
	ev, err := s.repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("event not found", internal.ErrCodeEventNotFound)
		}
		return nil, internal.NewInternalError("failed to get event", err)
	}
	if ev.UserID != actor.ID && !actor.HasPermission(permission.ManageCalendar) {
		return nil, internal.NewForbiddenError("cannot modify another user's event", internal.ErrCodeUnauthorizedAccess)
	}
	return ev, nil
}

func (s *Service) Create(actor *internal.SessionUser, dto CreateEventDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	start := dto.ParsedStartTime()
	ev := &Event{
		UserID:                actor.ID,
		Title:                 dto.Title,
		Description:           dto.Description,
		EventType:             dto.EventType,
		StartTime:             start,
		EndTime:               start.Add(time.Duration(dto.DurationMinutes) * time.Minute),
		Location:              dto.Location,
		ReminderMinutesBefore: dto.ReminderMinutesBefore,
	}
	if err := s.repo.CreateEvent(ev); err != nil {
		s.logger.Error("failed to create event", "user_id", actor.ID, "error", err)
		return nil, internal.NewInternalError("failed to create event", err)
	}
	return ev, nil
}

func (s *Service) Update(actor *internal.SessionUser, id int64, dto UpdateEventDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	ev, err := s.getOwned(actor, id)
	if err != nil {
		return nil, err
	}

	duration := ev.EndTime.Sub(ev.StartTime)
	if dto.Title != nil {
		ev.Title = *dto.Title
	}
	if dto.Description != nil {
		ev.Description = dto.Description
	}
	if dto.EventType != nil {
		ev.EventType = *dto.EventType
	}
	if dto.StartTime != nil {
		start, _ := time.Parse(time.RFC3339, *dto.StartTime)
		ev.StartTime = start
	}
	if dto.DurationMinutes != nil {
		duration = time.Duration(*dto.DurationMinutes) * time.Minute
	}
	ev.EndTime = ev.StartTime.Add(duration)
	if dto.Location != nil {
		ev.Location = dto.Location
	}
	if dto.ReminderMinutesBefore != nil {
		ev.ReminderMinutesBefore = *dto.ReminderMinutesBefore
	}
	if dto.Completed != nil {
		ev.Completed = *dto.Completed
	}

	if err := s.repo.UpdateEvent(ev); err != nil {
		s.logger.Error("failed to update event", "event_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update event", err)
	}
	return ev, nil
}

func (s *Service) Delete(actor *internal.SessionUser, id int64) error {
	if _, err := s.getOwned(actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(id); err != nil {
		return internal.NewInternalError("failed to delete event", err)
	}
	return nil
}

// Sync pushes an event to the named provider and stores the external id.
func (s *Service) Sync(actor *internal.SessionUser, id int64, provider string) (*Event, error) {
	ev, err := s.getOwned(actor, id)
	if err != nil {
		return nil, err
	}

	var syncer ProviderSyncer
	switch provider {
	case "google":
		syncer = s.google
	case "outlook":
		syncer = s.outlook
	default:
		return nil, internal.NewValidationError("unknown calendar provider", internal.ErrCodeValidationFailed)
	}

	externalID, err := syncer.PushEvent(ev)
	if err != nil {
		s.logger.Error("provider sync failed", "event_id", id, "provider", provider, "error", err)
		return nil, internal.NewInternalError("calendar sync failed", err)
	}

	switch provider {
	case "google":
		ev.GoogleEventID = &externalID
	case "outlook":
		ev.OutlookEventID = &externalID
	}
	if err := s.repo.UpdateEvent(ev); err != nil {
		return nil, internal.NewInternalError("failed to store external id", err)
	}
	return ev, nil
}

// --- reminder scan ---

type ReminderResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
}

// ProcessReminders walks events starting in the next 24 hours whose
// reminder has not fired and publishes a reminder for each one inside its
// lead window. One bad event never stops the scan.
func (s *Service) ProcessReminders(ctx context.Context, now time.Time) (*ReminderResult, error) {
	pending, err := s.repo.GetPendingReminders(now, now.Add(24*time.Hour))
	if err != nil {
		s.logger.Error("reminder scan failed to load events", "error", err)
		return nil, internal.NewInternalError("failed to load pending reminders", err)
	}

	result := &ReminderResult{Processed: len(pending)}
	for _, ev := range pending {
		if !ReminderDue(ev, now) {
			continue
		}

		minutesUntil := MinutesUntil(ev, now)
		if err := s.eventBus.Publish(ctx, events.NewReminderDueEvent(
			ev.ID, ev.UserID, ev.Title, ev.StartTime, minutesUntil)); err != nil {
			s.logger.Error("failed to publish reminder", "event_id", ev.ID, "error", err)
			continue
		}
		if err := s.repo.MarkReminderSent(ev.ID); err != nil {
			s.logger.Error("failed to mark reminder sent", "event_id", ev.ID, "error", err)
			continue
		}
		result.Sent++
	}

	s.logger.Info("reminder scan finished",
		"processed", result.Processed, "sent", result.Sent)
	return result, nil
}

package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/permission"
)

// Subscriber turns workflow events into inbox rows. It is the only writer
// of notifications in the system.
type Subscriber struct {
	service *Service
	logger  *slog.Logger
}

func NewSubscriber(service *Service, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		service: service,
		logger:  logger.With("component", "notification_subscriber"),
	}
}

// Register wires every event type this subscriber cares about.
func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeEmployeeCreated, s.onEmployeeCreated)
	bus.Subscribe(events.EventTypeOnboardingAssigned, s.onOnboardingAssigned)
	bus.Subscribe(events.EventTypeTaskCompleted, s.onTaskCompleted)
	bus.Subscribe(events.EventTypeOnboardingCompleted, s.onOnboardingCompleted)
	bus.Subscribe(events.EventTypeBuddyAssigned, s.onBuddyAssigned)
	bus.Subscribe(events.EventTypeReminderDue, s.onReminderDue)
	bus.Subscribe(events.EventTypePolicyAccepted, s.onPolicyAccepted)
	bus.Subscribe(events.EventTypeFeedbackReceived, s.onFeedbackReceived)
}

func (s *Subscriber) onEmployeeCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.EmployeeCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	_ = s.service.Notify(e.UserID,
		"Welcome aboard",
		fmt.Sprintf("Welcome %s! Your onboarding workspace is ready.", e.Name),
		TypeWelcome)

	if e.ManagerID != nil {
		_ = s.service.Notify(*e.ManagerID,
			"New team member",
			fmt.Sprintf("%s joined your team.", e.Name),
			TypeWelcome)
	}
	if e.BuddyID != nil {
		_ = s.service.Notify(*e.BuddyID,
			"You are a buddy",
			fmt.Sprintf("You were assigned as onboarding buddy for %s.", e.Name),
			TypeBuddyAssigned)
	}
	return nil
}

func (s *Subscriber) onOnboardingAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.OnboardingAssignedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	_ = s.service.Notify(e.UserID,
		"Onboarding plan assigned",
		fmt.Sprintf("The plan %q with %d tasks was assigned to you.", e.TemplateName, e.TaskCount),
		TypeOnboardingAssigned)

	if e.ManagerID != nil {
		_ = s.service.Notify(*e.ManagerID,
			"Onboarding plan assigned",
			fmt.Sprintf("%s received the onboarding plan %q.", e.UserName, e.TemplateName),
			TypeOnboardingAssigned)
	}

	// IT and facilities staff prepare equipment and workspace access.
	_ = s.service.NotifyRoles(
		[]string{permission.RoleIT, permission.RoleFacilities},
		"New onboarding started",
		fmt.Sprintf("%s starts onboarding; check provisioning tasks.", e.UserName),
		TypeOnboardingAssigned)

	return nil
}

func (s *Subscriber) onTaskCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	if e.ManagerID == nil {
		return nil
	}
	return s.service.Notify(*e.ManagerID,
		"Task completed",
		fmt.Sprintf("%s completed the task %q.", e.UserName, e.TaskTitle),
		TypeTaskCompleted)
}

func (s *Subscriber) onOnboardingCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.OnboardingCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	if e.ManagerID == nil {
		return nil
	}
	return s.service.Notify(*e.ManagerID,
		"Onboarding completed",
		fmt.Sprintf("%s finished all onboarding tasks.", e.UserName),
		TypeOnboardingCompleted)
}

func (s *Subscriber) onBuddyAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.BuddyAssignedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	return s.service.Notify(e.BuddyID,
		"You are a buddy",
		fmt.Sprintf("You were assigned as onboarding buddy for %s.", e.UserName),
		TypeBuddyAssigned)
}

func (s *Subscriber) onReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ReminderDueEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	msg := fmt.Sprintf("%q starts at %s.", e.Title, e.StartTime.Format("15:04"))
	if e.MinutesUntil > 0 {
		msg = fmt.Sprintf("%q starts in %d minutes.", e.Title, e.MinutesUntil)
	}
	return s.service.Notify(e.UserID, "Upcoming event", msg, TypeEventReminder)
}

func (s *Subscriber) onPolicyAccepted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PolicyAcceptedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	return s.service.Notify(e.UserID,
		"Policy accepted",
		fmt.Sprintf("You accepted %q (version %d).", e.PolicyTitle, e.PolicyVersion),
		TypePolicyAccepted)
}

func (s *Subscriber) onFeedbackReceived(ctx context.Context, event events.Event) error {
	_, ok := event.(*events.FeedbackReceivedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	// HR reviews every submission regardless of sentiment.
	return s.service.NotifyRoles([]string{permission.RoleHR},
		"New feedback received",
		"An employee submitted onboarding feedback.",
		TypeFeedbackReceived)
}

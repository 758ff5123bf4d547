package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated     = "employee.created"
	EventTypeOnboardingAssigned  = "onboarding.assigned"
	EventTypeTaskCompleted       = "onboarding.task_completed"
	EventTypeOnboardingCompleted = "onboarding.completed"
	EventTypeBuddyAssigned       = "employee.buddy_assigned"
	EventTypeReminderDue         = "calendar.reminder_due"
	EventTypePolicyAccepted      = "policy.accepted"
	EventTypeFeedbackReceived    = "feedback.received"
)

type BuddyAssignedEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	BuddyID  int64  `json:"buddy_id"`
}

func NewBuddyAssignedEvent(userID int64, userName string, buddyID int64) *BuddyAssignedEvent {
	return &BuddyAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBuddyAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"buddy_id": buddyID,
			},
		},
		UserID:   userID,
		UserName: userName,
		BuddyID:  buddyID,
	}
}

type EmployeeCreatedEvent struct {
	BaseEvent
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ManagerID *int64 `json:"manager_id,omitempty"`
	BuddyID   *int64 `json:"buddy_id,omitempty"`
}

func NewEmployeeCreatedEvent(userID int64, name, email string, managerID, buddyID *int64) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"name":    name,
				"email":   email,
			},
		},
		UserID:    userID,
		Name:      name,
		Email:     email,
		ManagerID: managerID,
		BuddyID:   buddyID,
	}
}

type OnboardingAssignedEvent struct {
	BaseEvent
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	TemplateID   int64  `json:"template_id"`
	TemplateName string `json:"template_name"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	TaskCount    int    `json:"task_count"`
}

func NewOnboardingAssignedEvent(userID int64, userName string, templateID int64, templateName string, managerID *int64, taskCount int) *OnboardingAssignedEvent {
	return &OnboardingAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOnboardingAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"template_id": templateID,
				"task_count":  taskCount,
			},
		},
		UserID:       userID,
		UserName:     userName,
		TemplateID:   templateID,
		TemplateName: templateName,
		ManagerID:    managerID,
		TaskCount:    taskCount,
	}
}

type TaskCompletedEvent struct {
	BaseEvent
	TaskID    int64  `json:"task_id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	TaskTitle string `json:"task_title"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

func NewTaskCompletedEvent(taskID, userID int64, userName, taskTitle string, managerID *int64) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id": taskID,
				"user_id": userID,
			},
		},
		TaskID:    taskID,
		UserID:    userID,
		UserName:  userName,
		TaskTitle: taskTitle,
		ManagerID: managerID,
	}
}

type OnboardingCompletedEvent struct {
	BaseEvent
	OnboardingID int64  `json:"onboarding_id"`
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
}

func NewOnboardingCompletedEvent(onboardingID, userID int64, userName string, managerID *int64) *OnboardingCompletedEvent {
	return &OnboardingCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOnboardingCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"onboarding_id": onboardingID,
				"user_id":       userID,
				"user_name":     userName,
			},
		},
		OnboardingID: onboardingID,
		UserID:       userID,
		UserName:     userName,
		ManagerID:    managerID,
	}
}

type ReminderDueEvent struct {
	BaseEvent
	CalendarEventID int64     `json:"calendar_event_id"`
	UserID          int64     `json:"user_id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	MinutesUntil    int       `json:"minutes_until"`
}

func NewReminderDueEvent(calendarEventID, userID int64, title string, startTime time.Time, minutesUntil int) *ReminderDueEvent {
	return &ReminderDueEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeReminderDue,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"calendar_event_id": calendarEventID,
				"user_id":           userID,
				"title":             title,
			},
		},
		CalendarEventID: calendarEventID,
		UserID:          userID,
		Title:           title,
		StartTime:       startTime,
		MinutesUntil:    minutesUntil,
	}
}

type PolicyAcceptedEvent struct {
	BaseEvent
	PolicyID      int64  `json:"policy_id"`
	PolicyTitle   string `json:"policy_title"`
	PolicyVersion int    `json:"policy_version"`
	UserID        int64  `json:"user_id"`
}

func NewPolicyAcceptedEvent(policyID int64, policyTitle string, policyVersion int, userID int64) *PolicyAcceptedEvent {
	return &PolicyAcceptedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePolicyAccepted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"policy_id":      policyID,
				"policy_title":   policyTitle,
				"policy_version": policyVersion,
				"user_id":        userID,
			},
		},
		PolicyID:      policyID,
		PolicyTitle:   policyTitle,
		PolicyVersion: policyVersion,
		UserID:        userID,
	}
}

type FeedbackReceivedEvent struct {
	BaseEvent
	FeedbackID int64  `json:"feedback_id"`
	UserID     int64  `json:"user_id"`
	Sentiment  string `json:"sentiment"`
}

func NewFeedbackReceivedEvent(feedbackID, userID int64, sentiment string) *FeedbackReceivedEvent {
	return &FeedbackReceivedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeFeedbackReceived,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"feedback_id": feedbackID,
				"user_id":     userID,
				"sentiment":   sentiment,
			},
		},
		FeedbackID: feedbackID,
		UserID:     userID,
		Sentiment:  sentiment,
	}
}

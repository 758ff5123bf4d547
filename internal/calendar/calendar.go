package calendar

import (
	"math"
	"time"
)

const (
	EventTypeMeeting     = "MEETING"
	EventTypeTraining    = "TRAINING"
	EventTypeOrientation = "ORIENTATION"
	EventTypeOther       = "OTHER"
)

// reminderGraceMinutes keeps a reminder eligible for a few minutes past the
// event start, so a slow scan cycle does not silently drop it.
const reminderGraceMinutes = 5

// EventTemplate schedules one recurring onboarding event relative to an
// employee's start date. A nil Role applies to everyone.
type EventTemplate struct {
	ID                    int64     `json:"id" gorm:"primaryKey"`
	Title                 string    `json:"title" gorm:"column:title;not null"`
	Description           *string   `json:"description,omitempty" gorm:"column:description"`
	Role                  *string   `json:"role,omitempty" gorm:"column:role"`
	EventType             string    `json:"event_type" gorm:"column:event_type;not null;default:MEETING"`
	DayOffset             int       `json:"day_offset" gorm:"column:day_offset;not null;default:0"`
	StartHour             int       `json:"start_hour" gorm:"column:start_hour;not null;default:9"`
	StartMinute           int       `json:"start_minute" gorm:"column:start_minute;not null;default:0"`
	DurationMinutes       int       `json:"duration_minutes" gorm:"column:duration_minutes;not null;default:60"`
	Location              *string   `json:"location,omitempty" gorm:"column:location"`
	ReminderMinutesBefore int       `json:"reminder_minutes_before" gorm:"column:reminder_minutes_before;not null;default:30"`
	Mandatory             bool      `json:"mandatory" gorm:"column:mandatory;default:false"`
	IsActive              bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt             time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (EventTemplate) TableName() string {
	return "event_templates"
}

// Event is a concrete calendar entry for one user. External ids are opaque
// handles from the provider sync stubs.
type Event struct {
	ID                    int64     `json:"id" gorm:"primaryKey"`
	UserID                int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	TemplateID            *int64    `json:"template_id,omitempty" gorm:"column:template_id"`
	Title                 string    `json:"title" gorm:"column:title;not null"`
	Description           *string   `json:"description,omitempty" gorm:"column:description"`
	EventType             string    `json:"event_type" gorm:"column:event_type;not null;default:MEETING"`
	StartTime             time.Time `json:"start_time" gorm:"column:start_time;not null"`
	EndTime               time.Time `json:"end_time" gorm:"column:end_time;not null"`
	Location              *string   `json:"location,omitempty" gorm:"column:location"`
	ReminderMinutesBefore int       `json:"reminder_minutes_before" gorm:"column:reminder_minutes_before;not null;default:30"`
	ReminderSent          bool      `json:"reminder_sent" gorm:"column:reminder_sent;default:false"`
	Completed             bool      `json:"completed" gorm:"column:completed;default:false"`
	GoogleEventID         *string   `json:"google_event_id,omitempty" gorm:"column:google_event_id"`
	OutlookEventID        *string   `json:"outlook_event_id,omitempty" gorm:"column:outlook_event_id"`
	CreatedAt             time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Event) TableName() string {
	return "calendar_events"
}

// MaterializeEvents expands templates into events for the given user. The
// caller supplies templates already filtered to the user's role and ordered
// by day offset. End time is always start plus the template duration.
func MaterializeEvents(userID int64, templates []EventTemplate, startDate time.Time) []Event {
	events := make([]Event, 0, len(templates))
	for _, tpl := range templates {
		tpl := tpl
		day := startDate.AddDate(0, 0, tpl.DayOffset)
		start := time.Date(day.Year(), day.Month(), day.Day(),
			tpl.StartHour, tpl.StartMinute, 0, 0, startDate.Location())
		events = append(events, Event{
			UserID:                userID,
			TemplateID:            &tpl.ID,
			Title:                 tpl.Title,
			Description:           tpl.Description,
			EventType:             tpl.EventType,
			StartTime:             start,
			EndTime:               start.Add(time.Duration(tpl.DurationMinutes) * time.Minute),
			Location:              tpl.Location,
			ReminderMinutesBefore: tpl.ReminderMinutesBefore,
		})
	}
	return events
}

// ReminderDue reports whether an event's reminder should fire now: inside
// the lead window and no more than the grace period past the start.
func ReminderDue(ev Event, now time.Time) bool {
	minutesUntil := MinutesUntil(ev, now)
	return minutesUntil <= ev.ReminderMinutesBefore &&
		minutesUntil >= -reminderGraceMinutes
}

// MinutesUntil floors the distance from now to the event start to whole
// minutes, so 30m59s out counts as 30 minutes.
func MinutesUntil(ev Event, now time.Time) int {
	return int(math.Floor(ev.StartTime.Sub(now).Seconds() / 60))
}

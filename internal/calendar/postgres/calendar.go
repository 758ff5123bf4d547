package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/calendar"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) GetEventTemplates() ([]calendar.EventTemplate, error) {
	var templates []calendar.EventTemplate
	err := r.db.Order("day_offset ASC, id ASC").Find(&templates).Error
	return templates, err
}

func (r *CalendarRepository) GetEventTemplateByID(id int64) (*calendar.EventTemplate, error) {
	var tpl calendar.EventTemplate
	if err := r.db.First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *CalendarRepository) GetActiveTemplatesForRole(role string) ([]calendar.EventTemplate, error) {
	var templates []calendar.EventTemplate
	err := r.db.
		Where("is_active = true AND (role IS NULL OR role = ?)", role).
		Order("day_offset ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

func (r *CalendarRepository) CreateEventTemplate(t *calendar.EventTemplate) error {
	return r.db.Create(t).Error
}

func (r *CalendarRepository) UpdateEventTemplate(t *calendar.EventTemplate) error {
	return r.db.Save(t).Error
}

func (r *CalendarRepository) DeleteEventTemplate(id int64) error {
	return r.db.Delete(&calendar.EventTemplate{}, id).Error
}

func (r *CalendarRepository) GetEventsByUserID(userID int64) ([]calendar.Event, error) {
	var evs []calendar.Event
	err := r.db.Where("user_id = ?", userID).Order("start_time ASC").Find(&evs).Error
	return evs, err
}

func (r *CalendarRepository) GetEventByID(id int64) (*calendar.Event, error) {
	var ev calendar.Event
	if err := r.db.First(&ev, id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *CalendarRepository) CreateEvent(ev *calendar.Event) error {
	return r.db.Create(ev).Error
}

func (r *CalendarRepository) CreateEvents(evs []calendar.Event) error {
	if len(evs) == 0 {
		return nil
	}
	return r.db.Create(&evs).Error
}

func (r *CalendarRepository) UpdateEvent(ev *calendar.Event) error {
	return r.db.Save(ev).Error
}

func (r *CalendarRepository) DeleteEvent(id int64) error {
	return r.db.Delete(&calendar.Event{}, id).Error
}

func (r *CalendarRepository) ReplaceEvents(userID int64, evs []calendar.Event) (int, error) {
	var deleted int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&calendar.Event{})
		if res.Error != nil {
			return res.Error
		}
		deleted = int(res.RowsAffected)
		if len(evs) == 0 {
			return nil
		}
		return tx.Create(&evs).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *CalendarRepository) GetPendingReminders(from, to time.Time) ([]calendar.Event, error) {
	var evs []calendar.Event
	err := r.db.
		Where("reminder_sent = false AND completed = false AND start_time > ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&evs).Error
	return evs, err
}

func (r *CalendarRepository) MarkReminderSent(id int64) error {
	return r.db.Model(&calendar.Event{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

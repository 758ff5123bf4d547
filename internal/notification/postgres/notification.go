package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/notification"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) GetByUserID(userID int64) ([]notification.Notification, error) {
	var notifications []notification.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) GetByID(id int64) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) MarkRead(id int64) error {
	return r.db.Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID int64) error {
	return r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) GetUserIDsByRoles(roles []string) ([]int64, error) {
	var ids []int64
	err := r.db.Table("users").
		Where("role IN ? AND is_active = true", roles).
		Pluck("id", &ids).Error
	return ids, err
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/feedback"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) GetAll() ([]feedback.Feedback, error) {
	var items []feedback.Feedback
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *FeedbackRepository) GetByUserID(userID int64) ([]feedback.Feedback, error) {
	var items []feedback.Feedback
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *FeedbackRepository) Create(f *feedback.Feedback) error {
	return r.db.Create(f).Error
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/document"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) GetAll() ([]document.Document, error) {
	var docs []document.Document
	err := r.db.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) GetByUserID(userID int64) ([]document.Document, error) {
	var docs []document.Document
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) GetByID(id int64) (*document.Document, error) {
	var doc document.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Create(d *document.Document) error {
	return r.db.Create(d).Error
}

func (r *DocumentRepository) Update(d *document.Document) error {
	return r.db.Save(d).Error
}

func (r *DocumentRepository) Delete(id int64) error {
	return r.db.Delete(&document.Document{}, id).Error
}

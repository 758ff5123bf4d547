package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/library"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) GetActive() ([]library.Resource, error) {
	var resources []library.Resource
	err := r.db.Where("is_active = true").Order("category ASC, title ASC").Find(&resources).Error
	return resources, err
}

func (r *LibraryRepository) GetAll() ([]library.Resource, error) {
	var resources []library.Resource
	err := r.db.Order("created_at DESC").Find(&resources).Error
	return resources, err
}

func (r *LibraryRepository) GetByID(id int64) (*library.Resource, error) {
	var res library.Resource
	if err := r.db.First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *LibraryRepository) Create(res *library.Resource) error {
	return r.db.Create(res).Error
}

func (r *LibraryRepository) Update(res *library.Resource) error {
	return r.db.Save(res).Error
}

func (r *LibraryRepository) Delete(id int64) error {
	return r.db.Delete(&library.Resource{}, id).Error
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetAll(kind catalog.Kind) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	err := r.db.Table(kind.TableName()).Order("code ASC").Find(&entries).Error
	return entries, err
}

func (r *CatalogRepository) GetByID(kind catalog.Kind, id int64) (*catalog.Entry, error) {
	var entry catalog.Entry
	if err := r.db.Table(kind.TableName()).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CatalogRepository) GetByCode(kind catalog.Kind, code string) (*catalog.Entry, error) {
	var entry catalog.Entry
	if err := r.db.Table(kind.TableName()).Where("code = ?", code).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CatalogRepository) Create(kind catalog.Kind, entry *catalog.Entry) error {
	return r.db.Table(kind.TableName()).Create(entry).Error
}

func (r *CatalogRepository) Update(kind catalog.Kind, entry *catalog.Entry) error {
	return r.db.Table(kind.TableName()).Save(entry).Error
}

func (r *CatalogRepository) Delete(kind catalog.Kind, id int64) error {
	return r.db.Table(kind.TableName()).Delete(&catalog.Entry{}, id).Error
}

func (r *CatalogRepository) CountUserReferences(kind catalog.Kind, code string) (int64, error) {
	var column string
	switch kind {
	case catalog.KindRole:
		column = "role"
	case catalog.KindDepartment:
		column = "department"
	case catalog.KindJobTitle:
		column = "job_title"
	}

	var count int64
	err := r.db.Table("users").Where(column+" = ?", code).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountTemplateReferences(code string) (int64, error) {
	var count int64
	err := r.db.Table("onboarding_templates").Where("job_title = ?", code).Count(&count).Error
	return count, err
}

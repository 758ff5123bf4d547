package postgres

import (
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository implements permission.RepositoryAPI using GORM
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&permission.RolePermission{}).Count(&count).Error
	return count, err
}

func (r *PermissionRepository) GetAll() ([]permission.RolePermission, error) {
	var grants []permission.RolePermission
	err := r.db.Order("role, permission").Find(&grants).Error
	return grants, err
}

func (r *PermissionRepository) GetByRole(role string) ([]permission.RolePermission, error) {
	var grants []permission.RolePermission
	err := r.db.Where("role = ?", role).Order("permission").Find(&grants).Error
	return grants, err
}

// Insert is idempotent: a duplicate (role, permission) pair is a no-op so a
// concurrent first-seed race cannot fail.
func (r *PermissionRepository) Insert(grant *permission.RolePermission) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(grant).Error
}

func (r *PermissionRepository) Delete(role, perm string) error {
	return r.db.Where("role = ? AND permission = ?", role, perm).
		Delete(&permission.RolePermission{}).Error
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]user.UserWithOnboarding, error) {
	var rows []user.UserWithOnboarding
	err := r.db.
		Table("users u").
		Select("u.*, o.status AS onboarding_status, o.progress AS onboarding_progress").
		Joins("LEFT JOIN user_onboardings o ON o.user_id = u.id").
		Order("u.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetManagers() ([]user.Manager, error) {
	var managers []user.Manager
	err := r.db.
		Table("users").
		Select("id, name, email").
		Where("role IN ? AND is_active = true", []string{"MANAGER", "HR"}).
		Order("name ASC").
		Find(&managers).Error
	return managers, err
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&user.User{}, id).Error
}

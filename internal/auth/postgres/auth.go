package postgres

import (
	"database/sql"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, internal.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetSessionUser(userID int64) (*internal.SessionUser, error) {
	var user internal.SessionUser
	query := `SELECT id, email, name, role FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

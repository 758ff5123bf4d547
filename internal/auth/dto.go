package auth

import (
	"strings"

	"github.com/frahmantamala/onboarding-management/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeMissingField)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is not valid", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeMissingField)
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return internal.NewValidationFieldError("refresh_token", "refresh token is required", internal.ErrCodeMissingField)
	}
	return nil
}

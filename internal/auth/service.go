package auth

import (
	"log/slog"

	"github.com/frahmantamala/onboarding-management/internal"
)

// PermissionSnapshotter resolves the capability set shipped with a session.
type PermissionSnapshotter interface {
	Snapshot(role string) ([]string, error)
}

type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	permissions    PermissionSnapshotter
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, permissions PermissionSnapshotter, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		permissions:    permissions,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, userID, err := s.repo.GetCredentials(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown or inactive user", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	user, err := s.repo.GetSessionUser(userID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to load user", err)
	}

	return s.issueTokens(user)
}

// RefreshTokens validates a refresh token and returns a new pair. The user is
// re-read so a role change invalidates stale role claims on rotation.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	user, err := s.repo.GetSessionUser(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *internal.SessionUser) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// SessionFor loads the user and attaches the resolved permission snapshot.
func (s *Service) SessionFor(userID int64) (*internal.SessionUser, error) {
	user, err := s.repo.GetSessionUser(userID)
	if err != nil {
		return nil, err
	}

	perms, err := s.permissions.Snapshot(user.Role)
	if err != nil {
		s.logger.Error("failed to resolve permission snapshot", "error", err, "user_id", userID, "role", user.Role)
		return nil, err
	}
	user.Permissions = perms

	return user, nil
}

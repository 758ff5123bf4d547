package notification

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
)

type RepositoryAPI interface {
	GetByUserID(userID int64) ([]Notification, error)
	GetByID(id int64) (*Notification, error)
	CountUnread(userID int64) (int64, error)
	Create(n *Notification) error
	MarkRead(id int64) error
	MarkAllRead(userID int64) error
	GetUserIDsByRoles(roles []string) ([]int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "notification_service"),
	}
}

func (s *Service) ListForUser(userID int64) ([]Notification, error) {
	notifications, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list notifications", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list notifications", err)
	}
	return notifications, nil
}

func (s *Service) UnreadCount(userID int64) (int64, error) {
	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, internal.NewInternalError("failed to count notifications", err)
	}
	return count, nil
}

// Notify creates one inbox row. Failures are logged and swallowed by the
// subscribers calling this; a lost notification never breaks a workflow.
func (s *Service) Notify(userID int64, title, message, notifType string) error {
	n := &Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notification",
			"user_id", userID, "type", notifType, "error", err)
		return err
	}
	return nil
}

// NotifyRoles fans a notification out to every active holder of the given
// roles.
func (s *Service) NotifyRoles(roles []string, title, message, notifType string) error {
	ids, err := s.repo.GetUserIDsByRoles(roles)
	if err != nil {
		s.logger.Error("failed to resolve role holders", "roles", roles, "error", err)
		return err
	}
	for _, id := range ids {
		if err := s.Notify(id, title, message, notifType); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) MarkRead(actor *internal.SessionUser, id int64) error {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError("notification not found", internal.ErrCodeResourceNotFound)
		}
		return internal.NewInternalError("failed to get notification", err)
	}
	if n.UserID != actor.ID {
		return internal.NewForbiddenError("cannot modify another user's notification", internal.ErrCodeUnauthorizedAccess)
	}
	if err := s.repo.MarkRead(id); err != nil {
		return internal.NewInternalError("failed to mark notification read", err)
	}
	return nil
}

func (s *Service) MarkAllRead(userID int64) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return internal.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}

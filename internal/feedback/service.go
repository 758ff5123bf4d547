package feedback

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/permission"
)

type RepositoryAPI interface {
	GetAll() ([]Feedback, error)
	GetByUserID(userID int64) ([]Feedback, error)
	Create(f *Feedback) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.With("component", "feedback_service"),
	}
}

// List returns all feedback for analytics viewers, otherwise only the
// caller's own submissions.
func (s *Service) List(actor *internal.SessionUser) ([]Feedback, error) {
	var (
		items []Feedback
		err   error
	)
	if actor.HasPermission(permission.ViewAnalytics) {
		items, err = s.repo.GetAll()
	} else {
		items, err = s.repo.GetByUserID(actor.ID)
	}
	if err != nil {
		s.logger.Error("failed to list feedback", "user_id", actor.ID, "error", err)
		return nil, internal.NewInternalError("failed to list feedback", err)
	}
	return items, nil
}

func (s *Service) Create(userID int64, dto CreateFeedbackDTO) (*Feedback, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sentiment, score := Analyze(dto.Message)
	f := &Feedback{
		UserID:    userID,
		Category:  dto.Category,
		Message:   dto.Message,
		Sentiment: sentiment,
		Score:     score,
	}
	if err := s.repo.Create(f); err != nil {
		s.logger.Error("failed to create feedback", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to create feedback", err)
	}

	s.logger.Info("feedback recorded",
		"feedback_id", f.ID, "user_id", userID, "sentiment", sentiment, "score", score)

	s.eventBus.Publish(context.Background(), events.NewFeedbackReceivedEvent(f.ID, userID, sentiment))
	return f, nil
}

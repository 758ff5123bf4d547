package policy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
)

type RepositoryAPI interface {
	GetAll() ([]Policy, error)
	GetActiveWithAcceptance(userID int64) ([]PolicyWithAcceptance, error)
	GetByID(id int64) (*Policy, error)
	Create(p *Policy) error
	Update(p *Policy) error
	Delete(id int64) error

	AppendAcceptance(a *Acceptance) error
	GetAcceptances(policyID int64) ([]Acceptance, error)
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
		logger:   logger.With("component", "policy_service"),
	}
}

// ListForUser returns active policies annotated with the caller's
// acceptance state.
func (s *Service) ListForUser(userID int64) ([]PolicyWithAcceptance, error) {
	policies, err := s.repo.GetActiveWithAcceptance(userID)
	if err != nil {
		s.logger.Error("failed to list policies", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list policies", err)
	}
	return policies, nil
}

func (s *Service) ListAll() ([]Policy, error) {
	policies, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list policies", "error", err)
		return nil, internal.NewInternalError("failed to list policies", err)
	}
	return policies, nil
}

func (s *Service) Get(id int64) (*Policy, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("policy not found", internal.ErrCodePolicyNotFound)
		}
		return nil, internal.NewInternalError("failed to get policy", err)
	}
	return p, nil
}

func (s *Service) Create(dto CreatePolicyDTO) (*Policy, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	p := &Policy{
		Title:    dto.Title,
		Content:  dto.Content,
		Category: dto.Category,
		Version:  1,
		IsActive: true,
	}
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create policy", "title", dto.Title, "error", err)
		return nil, internal.NewInternalError("failed to create policy", err)
	}
	s.logger.Info("policy created", "policy_id", p.ID, "title", p.Title)
	return p, nil
}

// Update bumps the version whenever content changes, so acceptances of
// older wordings stay distinguishable in the audit trail.
func (s *Service) Update(id int64, dto UpdatePolicyDTO) (*Policy, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Content != nil && *dto.Content != p.Content {
		p.Content = *dto.Content
		p.Version++
	}
	if dto.Category != nil {
		p.Category = dto.Category
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update policy", "policy_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update policy", err)
	}
	return p, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete policy", err)
	}
	s.logger.Info("policy deleted", "policy_id", id)
	return nil
}

// Accept appends an acceptance record with the caller's network details.
func (s *Service) Accept(userID, policyID int64, ipAddress, userAgent string) (*Acceptance, error) {
	p, err := s.Get(policyID)
	if err != nil {
		return nil, err
	}

	a := &Acceptance{
		PolicyID:      p.ID,
		UserID:        userID,
		PolicyVersion: p.Version,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		AcceptedAt:    time.Now(),
	}
	if err := s.repo.AppendAcceptance(a); err != nil {
		s.logger.Error("failed to record acceptance", "policy_id", policyID, "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to record acceptance", err)
	}

	s.logger.Info("policy accepted",
		"policy_id", policyID, "user_id", userID, "version", p.Version)

	s.eventBus.Publish(context.Background(), events.NewPolicyAcceptedEvent(p.ID, p.Title, p.Version, userID))
	return a, nil
}

func (s *Service) Acceptances(policyID int64) ([]Acceptance, error) {
	if _, err := s.Get(policyID); err != nil {
		return nil, err
	}
	acceptances, err := s.repo.GetAcceptances(policyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list acceptances", err)
	}
	return acceptances, nil
}

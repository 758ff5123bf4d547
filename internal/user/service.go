package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/auth"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
)

type RepositoryAPI interface {
	GetAll() ([]UserWithOnboarding, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetManagers() ([]Manager, error)
	Create(u *User) error
	Update(u *User) error
	Delete(id int64) error
}

// OnboardingAssigner propagates an onboarding template onto a user. Wired
// after construction because the onboarding service also needs user lookups.
type OnboardingAssigner interface {
	AssignTemplate(ctx context.Context, userID, templateID int64) error
}

type Service struct {
	repo       RepositoryAPI
	eventBus   *events.EventBus
	assigner   OnboardingAssigner
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
		logger:     logger.With("component", "user_service"),
	}
}

func (s *Service) SetAssigner(assigner OnboardingAssigner) {
	s.assigner = assigner
}

func (s *Service) List() ([]UserWithOnboarding, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal_errors.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) Get(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal_errors.NewNotFoundError("user not found", internal_errors.ErrCodeUserNotFound)
		}
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, internal_errors.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) Managers() ([]Manager, error) {
	managers, err := s.repo.GetManagers()
	if err != nil {
		s.logger.Error("failed to list managers", "error", err)
		return nil, internal_errors.NewInternalError("failed to list managers", err)
	}
	return managers, nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal_errors.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, internal_errors.NewConflictError(
			fmt.Sprintf("user with email %s already exists", dto.Email),
			internal_errors.ErrCodeDuplicateEmail,
		)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal_errors.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Email:        dto.Email,
		PasswordHash: hash,
		Name:         dto.Name,
		Role:         dto.Role,
		Department:   dto.Department,
		JobTitle:     dto.JobTitle,
		Phone:        dto.Phone,
		StartDate:    dto.ParsedStartDate(),
		ManagerID:    dto.ManagerID,
		BuddyID:      dto.BuddyID,
		IsActive:     true,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, internal_errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)

	if dto.TemplateID != nil && s.assigner != nil {
		if err := s.assigner.AssignTemplate(ctx, u.ID, *dto.TemplateID); err != nil {
			// Account creation already committed; surface the propagation
			// failure without rolling the user back.
			s.logger.Error("template assignment failed after user creation",
				"user_id", u.ID, "template_id", *dto.TemplateID, "error", err)
			return nil, err
		}
	}

	s.eventBus.Publish(ctx, events.NewEmployeeCreatedEvent(u.ID, u.Name, u.Email, u.ManagerID, u.BuddyID))

	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != u.Email {
		existing, err := s.repo.GetByEmail(*dto.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal_errors.NewInternalError("failed to check email", err)
		}
		if existing != nil {
			return nil, internal_errors.NewConflictError(
				fmt.Sprintf("user with email %s already exists", *dto.Email),
				internal_errors.ErrCodeDuplicateEmail,
			)
		}
		u.Email = *dto.Email
	}

	buddyChanged := dto.BuddyID != nil && (u.BuddyID == nil || *dto.BuddyID != *u.BuddyID)

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Department != nil {
		u.Department = dto.Department
	}
	if dto.JobTitle != nil {
		u.JobTitle = dto.JobTitle
	}
	if dto.Phone != nil {
		u.Phone = dto.Phone
	}
	if dto.StartDate != nil {
		parsed := (&CreateUserDTO{StartDate: dto.StartDate}).ParsedStartDate()
		u.StartDate = parsed
	}
	if dto.ManagerID != nil {
		u.ManagerID = dto.ManagerID
	}
	if dto.BuddyID != nil {
		u.BuddyID = dto.BuddyID
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal_errors.NewInternalError("failed to update user", err)
	}

	if buddyChanged && u.BuddyID != nil {
		s.eventBus.Publish(ctx, events.NewBuddyAssignedEvent(u.ID, u.Name, *u.BuddyID))
	}

	return u, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return internal_errors.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

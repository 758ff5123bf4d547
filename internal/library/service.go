package library

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
)

type RepositoryAPI interface {
	GetActive() ([]Resource, error)
	GetAll() ([]Resource, error)
	GetByID(id int64) (*Resource, error)
	Create(res *Resource) error
	Update(res *Resource) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "library_service"),
	}
}

func (s *Service) ListActive() ([]Resource, error) {
	resources, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to list resources", "error", err)
		return nil, internal.NewInternalError("failed to list resources", err)
	}
	return resources, nil
}

func (s *Service) ListAll() ([]Resource, error) {
	resources, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list resources", err)
	}
	return resources, nil
}

func (s *Service) Get(id int64) (*Resource, error) {
	res, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("resource not found", internal.ErrCodeResourceNotFound)
		}
		return nil, internal.NewInternalError("failed to get resource", err)
	}
	return res, nil
}

func (s *Service) Create(dto CreateResourceDTO) (*Resource, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	res := &Resource{
		Title:        dto.Title,
		Description:  dto.Description,
		Category:     dto.Category,
		URL:          dto.URL,
		ResourceType: dto.ResourceType,
		IsActive:     true,
	}
	if err := s.repo.Create(res); err != nil {
		s.logger.Error("failed to create resource", "title", dto.Title, "error", err)
		return nil, internal.NewInternalError("failed to create resource", err)
	}
	s.logger.Info("resource created", "resource_id", res.ID, "title", res.Title)
	return res, nil
}

func (s *Service) Update(id int64, dto UpdateResourceDTO) (*Resource, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	res, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		res.Title = *dto.Title
	}
	if dto.Description != nil {
		res.Description = dto.Description
	}
	if dto.Category != nil {
		res.Category = dto.Category
	}
	if dto.URL != nil {
		res.URL = *dto.URL
	}
	if dto.ResourceType != nil {
		res.ResourceType = *dto.ResourceType
	}
	if dto.IsActive != nil {
		res.IsActive = *dto.IsActive
	}
	if err := s.repo.Update(res); err != nil {
		return nil, internal.NewInternalError("failed to update resource", err)
	}
	return res, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete resource", err)
	}
	return nil
}

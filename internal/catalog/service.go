package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetAll(kind Kind) ([]Entry, error)
	GetByID(kind Kind, id int64) (*Entry, error)
	GetByCode(kind Kind, code string) (*Entry, error)
	Create(kind Kind, entry *Entry) error
	Update(kind Kind, entry *Entry) error
	Delete(kind Kind, id int64) error
	CountUserReferences(kind Kind, code string) (int64, error)
	CountTemplateReferences(code string) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "catalog_service"),
	}
}

func (s *Service) List(kind Kind) ([]EntryWithUsage, error) {
	entries, err := s.repo.GetAll(kind)
	if err != nil {
		s.logger.Error("failed to list catalog entries", "kind", kind, "error", err)
		return nil, internal_errors.NewInternalError("failed to list catalog entries", err)
	}

	result := make([]EntryWithUsage, 0, len(entries))
	for _, e := range entries {
		count, err := s.repo.CountUserReferences(kind, e.Code)
		if err != nil {
			s.logger.Error("failed to count references", "kind", kind, "code", e.Code, "error", err)
			return nil, internal_errors.NewInternalError("failed to count catalog references", err)
		}
		result = append(result, EntryWithUsage{Entry: e, UserCount: count})
	}
	return result, nil
}

// Options assembles the active entries of all three catalogs for form
// dropdowns. Inactive rows are filtered out and job titles are grouped by
// category, with uncategorized ones under OTHER.
func (s *Service) Options() (*SystemOptions, error) {
	opts := &SystemOptions{
		Roles:       []Entry{},
		Departments: []Entry{},
		JobTitles:   map[string][]Entry{},
	}

	roles, err := s.activeEntries(KindRole)
	if err != nil {
		return nil, err
	}
	opts.Roles = roles

	departments, err := s.activeEntries(KindDepartment)
	if err != nil {
		return nil, err
	}
	opts.Departments = departments

	jobTitles, err := s.activeEntries(KindJobTitle)
	if err != nil {
		return nil, err
	}
	for _, e := range jobTitles {
		group := UncategorizedGroup
		if e.Category != nil && *e.Category != "" {
			group = *e.Category
		}
		opts.JobTitles[group] = append(opts.JobTitles[group], e)
	}

	return opts, nil
}

func (s *Service) activeEntries(kind Kind) ([]Entry, error) {
	entries, err := s.repo.GetAll(kind)
	if err != nil {
		s.logger.Error("failed to list catalog entries", "kind", kind, "error", err)
		return nil, internal_errors.NewInternalError("failed to list catalog entries", err)
	}
	active := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return active, nil
}

func (s *Service) Get(kind Kind, id int64) (*Entry, error) {
	entry, err := s.repo.GetByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal_errors.NewNotFoundError("catalog entry not found", internal_errors.ErrCodeCatalogNotFound)
		}
		s.logger.Error("failed to get catalog entry", "kind", kind, "id", id, "error", err)
		return nil, internal_errors.NewInternalError("failed to get catalog entry", err)
	}
	return entry, nil
}

func (s *Service) Create(kind Kind, dto CreateEntryDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(kind, dto.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check catalog code", "kind", kind, "code", dto.Code, "error", err)
		return nil, internal_errors.NewInternalError("failed to check catalog code", err)
	}
	if existing != nil {
		return nil, internal_errors.NewConflictError(
			fmt.Sprintf("catalog entry with code %s already exists", dto.Code),
			internal_errors.ErrCodeDuplicateCode,
		)
	}

	entry := &Entry{
		Code:        dto.Code,
		Label:       dto.Label,
		Description: dto.Description,
		Category:    dto.Category,
		IsActive:    true,
		IsSystem:    false,
	}
	if err := s.repo.Create(kind, entry); err != nil {
		s.logger.Error("failed to create catalog entry", "kind", kind, "code", dto.Code, "error", err)
		return nil, internal_errors.NewInternalError("failed to create catalog entry", err)
	}

	s.logger.Info("catalog entry created", "kind", kind, "code", entry.Code, "id", entry.ID)
	return entry, nil
}

func (s *Service) Update(kind Kind, id int64, dto UpdateEntryDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.Get(kind, id)
	if err != nil {
		return nil, err
	}

	if dto.Code != nil && *dto.Code != entry.Code {
		// System rows are referenced by code from seeded data, so renaming
		// them would orphan those references.
		if entry.IsSystem {
			return nil, internal_errors.NewForbiddenError("cannot change the code of a system entry", internal_errors.ErrCodeSystemEntry)
		}
		existing, err := s.repo.GetByCode(kind, *dto.Code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal_errors.NewInternalError("failed to check catalog code", err)
		}
		if existing != nil {
			return nil, internal_errors.NewConflictError(
				fmt.Sprintf("catalog entry with code %s already exists", *dto.Code),
				internal_errors.ErrCodeDuplicateCode,
			)
		}
		entry.Code = *dto.Code
	}
	if dto.Label != nil {
		entry.Label = *dto.Label
	}
	if dto.Description != nil {
		entry.Description = dto.Description
	}
	if dto.Category != nil {
		entry.Category = dto.Category
	}
	if dto.IsActive != nil {
		entry.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(kind, entry); err != nil {
		s.logger.Error("failed to update catalog entry", "kind", kind, "id", id, "error", err)
		return nil, internal_errors.NewInternalError("failed to update catalog entry", err)
	}
	return entry, nil
}

func (s *Service) Delete(kind Kind, id int64) error {
	entry, err := s.Get(kind, id)
	if err != nil {
		return err
	}

	if entry.IsSystem {
		return internal_errors.NewForbiddenError("cannot delete a system entry", internal_errors.ErrCodeSystemEntry)
	}

	userCount, err := s.repo.CountUserReferences(kind, entry.Code)
	if err != nil {
		return internal_errors.NewInternalError("failed to count catalog references", err)
	}
	if userCount > 0 {
		return internal_errors.NewConflictError(
			fmt.Sprintf("catalog entry is referenced by %d user(s)", userCount),
			internal_errors.ErrCodeCatalogInUse,
		)
	}

	if kind == KindJobTitle {
		templateCount, err := s.repo.CountTemplateReferences(entry.Code)
		if err != nil {
			return internal_errors.NewInternalError("failed to count catalog references", err)
		}
		if templateCount > 0 {
			return internal_errors.NewConflictError(
				fmt.Sprintf("catalog entry is referenced by %d onboarding template(s)", templateCount),
				internal_errors.ErrCodeCatalogInUse,
			)
		}
	}

	if err := s.repo.Delete(kind, id); err != nil {
		s.logger.Error("failed to delete catalog entry", "kind", kind, "id", id, "error", err)
		return internal_errors.NewInternalError("failed to delete catalog entry", err)
	}

	s.logger.Info("catalog entry deleted", "kind", kind, "code", entry.Code, "id", id)
	return nil
}

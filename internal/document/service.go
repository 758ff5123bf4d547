package document

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/permission"
)

type RepositoryAPI interface {
	GetAll() ([]Document, error)
	GetByUserID(userID int64) ([]Document, error)
	GetByID(id int64) (*Document, error)
	Create(d *Document) error
	Update(d *Document) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "document_service"),
	}
}

func (s *Service) ListAll() ([]Document, error) {
	docs, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list documents", "error", err)
		return nil, internal.NewInternalError("failed to list documents", err)
	}
	return docs, nil
}

func (s *Service) ListForUser(userID int64) ([]Document, error) {
	docs, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list documents", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list documents", err)
	}
	return docs, nil
}

func (s *Service) Get(id int64) (*Document, error) {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("document not found", internal.ErrCodeResourceNotFound)
		}
		return nil, internal.NewInternalError("failed to get document", err)
	}
	return doc, nil
}

func (s *Service) Create(dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	doc := &Document{
		UserID: dto.UserID,
		TaskID: dto.TaskID,
		Name:   dto.Name,
		Status: StatusPending,
	}
	if err := s.repo.Create(doc); err != nil {
		s.logger.Error("failed to create document", "user_id", dto.UserID, "error", err)
		return nil, internal.NewInternalError("failed to create document", err)
	}
	return doc, nil
}

// Upload records the uploaded file's URL and flips the document to
// SUBMITTED. Owners only, unless the actor manages employees.
func (s *Service) Upload(actor *internal.SessionUser, id int64, dto UploadDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if doc.UserID != actor.ID && !actor.HasPermission(permission.ManageEmployees) {
		return nil, internal.NewForbiddenError("cannot modify another user's document", internal.ErrCodeUnauthorizedAccess)
	}

	now := time.Now()
	doc.FileURL = &dto.FileURL
	doc.Status = StatusSubmitted
	doc.UploadedAt = &now

	if err := s.repo.Update(doc); err != nil {
		s.logger.Error("failed to update document", "document_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update document", err)
	}

	s.logger.Info("document submitted", "document_id", id, "user_id", doc.UserID)
	return doc, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete document", err)
	}
	return nil
}

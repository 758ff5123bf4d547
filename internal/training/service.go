package training

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
)

type RepositoryAPI interface {
	GetCoursesWithState(userID int64) ([]CourseWithState, error)
	GetCourses() ([]Course, error)
	GetCourseByID(id int64) (*Course, error)
	CreateCourse(c *Course) error
	UpdateCourse(c *Course) error
	DeleteCourse(id int64) error

	GetModules(courseID int64) ([]Module, error)
	GetModuleByID(id int64) (*Module, error)
	CreateModule(m *Module) error
	UpdateModule(m *Module) error
	DeleteModule(id int64) error

	GetQuizByModuleID(moduleID int64) (*Quiz, error)
	GetQuizQuestions(quizID int64) ([]QuizQuestion, error)
	// ReplaceQuiz swaps the module's quiz and its whole question set in one
	// transaction.
	ReplaceQuiz(moduleID int64, quiz *Quiz, questions []QuizQuestion) error
	DeleteQuiz(moduleID int64) error

	GetEnrollment(courseID, userID int64) (*Enrollment, error)
	CreateEnrollment(e *Enrollment) error
	UpdateEnrollment(e *Enrollment) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "training_service"),
	}
}

// --- courses ---

func (s *Service) ListForUser(userID int64) ([]CourseWithState, error) {
	courses, err := s.repo.GetCoursesWithState(userID)
	if err != nil {
		s.logger.Error("failed to list courses", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list courses", err)
	}
	return courses, nil
}

func (s *Service) ListAll() ([]Course, error) {
	courses, err := s.repo.GetCourses()
	if err != nil {
		return nil, internal.NewInternalError("failed to list courses", err)
	}
	return courses, nil
}

func (s *Service) GetCourse(id int64) (*Course, error) {
	c, err := s.repo.GetCourseByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("course not found", internal.ErrCodeCourseNotFound)
		}
		return nil, internal.NewInternalError("failed to get course", err)
	}
	return c, nil
}

func (s *Service) CreateCourse(dto CreateCourseDTO) (*Course, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	c := &Course{
		Title:           dto.Title,
		Description:     dto.Description,
		Category:        dto.Category,
		DurationMinutes: dto.DurationMinutes,
		IsMandatory:     dto.IsMandatory,
		IsActive:        true,
	}
	if err := s.repo.CreateCourse(c); err != nil {
		s.logger.Error("failed to create course", "title", dto.Title, "error", err)
		return nil, internal.NewInternalError("failed to create course", err)
	}
	s.logger.Info("course created", "course_id", c.ID, "title", c.Title)
	return c, nil
}

func (s *Service) UpdateCourse(id int64, dto UpdateCourseDTO) (*Course, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	c, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		c.Title = *dto.Title
	}
	if dto.Description != nil {
		c.Description = dto.Description
	}
	if dto.Category != nil {
		c.Category = dto.Category
	}
	if dto.DurationMinutes != nil {
		c.DurationMinutes = *dto.DurationMinutes
	}
	if dto.IsMandatory != nil {
		c.IsMandatory = *dto.IsMandatory
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}
	if err := s.repo.UpdateCourse(c); err != nil {
		return nil, internal.NewInternalError("failed to update course", err)
	}
	return c, nil
}

func (s *Service) DeleteCourse(id int64) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	if err := s.repo.DeleteCourse(id); err != nil {
		return internal.NewInternalError("failed to delete course", err)
	}
	return nil
}

// --- modules ---

func (s *Service) ListModules(courseID int64) ([]Module, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	modules, err := s.repo.GetModules(courseID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list modules", err)
	}
	return modules, nil
}

func (s *Service) CreateModule(courseID int64, dto CreateModuleDTO) (*Module, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	m := &Module{
		CourseID:  courseID,
		Title:     dto.Title,
		Content:   dto.Content,
		SortOrder: dto.SortOrder,
	}
	if err := s.repo.CreateModule(m); err != nil {
		return nil, internal.NewInternalError("failed to create module", err)
	}
	return m, nil
}

func (s *Service) getModule(id int64) (*Module, error) {
	m, err := s.repo.GetModuleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("module not found", internal.ErrCodeResourceNotFound)
		}
		return nil, internal.NewInternalError("failed to get module", err)
	}
	return m, nil
}

func (s *Service) UpdateModule(id int64, dto UpdateModuleDTO) (*Module, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	m, err := s.getModule(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		m.Title = *dto.Title
	}
	if dto.Content != nil {
		m.Content = dto.Content
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.repo.UpdateModule(m); err != nil {
		return nil, internal.NewInternalError("failed to update module", err)
	}
	return m, nil
}

func (s *Service) DeleteModule(id int64) error {
	if _, err := s.getModule(id); err != nil {
		return err
	}
	if err := s.repo.DeleteModule(id); err != nil {
		return internal.NewInternalError("failed to delete module", err)
	}
	return nil
}

// --- quizzes ---

func (s *Service) GetQuiz(moduleID int64) (*QuizView, error) {
	if _, err := s.getModule(moduleID); err != nil {
		return nil, err
	}
	quiz, err := s.repo.GetQuizByModuleID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("module has no quiz", internal.ErrCodeResourceNotFound)
		}
		return nil, internal.NewInternalError("failed to get quiz", err)
	}
	questions, err := s.repo.GetQuizQuestions(quiz.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load quiz questions", err)
	}
	return &QuizView{Quiz: *quiz, Questions: questions}, nil
}

// SetQuiz replaces the module's quiz wholesale. Partial question edits are
// not supported; the admin always submits the full set.
func (s *Service) SetQuiz(moduleID int64, dto SetQuizDTO) (*QuizView, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.getModule(moduleID); err != nil {
		return nil, err
	}

	quiz := &Quiz{
		ModuleID:     moduleID,
		Title:        dto.Title,
		PassingScore: dto.PassingScore,
	}
	questions := make([]QuizQuestion, 0, len(dto.Questions))
	for i, q := range dto.Questions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return nil, internal.NewInternalError("failed to encode options", err)
		}
		questions = append(questions, QuizQuestion{
			Question:     q.Question,
			Options:      string(opts),
			CorrectIndex: q.CorrectIndex,
			SortOrder:    i,
		})
	}

	if err := s.repo.ReplaceQuiz(moduleID, quiz, questions); err != nil {
		s.logger.Error("failed to replace quiz", "module_id", moduleID, "error", err)
		return nil, internal.NewInternalError("failed to save quiz", err)
	}

	s.logger.Info("quiz replaced", "module_id", moduleID, "questions", len(questions))
	return s.GetQuiz(moduleID)
}

func (s *Service) DeleteQuiz(moduleID int64) error {
	if _, err := s.getModule(moduleID); err != nil {
		return err
	}
	if err := s.repo.DeleteQuiz(moduleID); err != nil {
		return internal.NewInternalError("failed to delete quiz", err)
	}
	return nil
}

// --- enrollments ---

func (s *Service) Enroll(userID, courseID int64) (*Enrollment, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetEnrollment(courseID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check enrollment", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("already enrolled in this course", internal.ErrCodeDuplicateCode)
	}

	e := &Enrollment{
		CourseID:   courseID,
		UserID:     userID,
		Status:     EnrollmentEnrolled,
		EnrolledAt: time.Now(),
	}
	if err := s.repo.CreateEnrollment(e); err != nil {
		s.logger.Error("failed to enroll", "course_id", courseID, "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to enroll", err)
	}

	s.logger.Info("enrolled in course", "course_id", courseID, "user_id", userID)
	return e, nil
}

// Complete finishes the enrollment and issues a certificate URL. The
// certificate service is mocked; the URL is fabricated but stable.
func (s *Service) Complete(userID, courseID int64) (*Enrollment, error) {
	e, err := s.repo.GetEnrollment(courseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("not enrolled in this course", internal.ErrCodeResourceNotFound)
		}
		return nil, internal.NewInternalError("failed to get enrollment", err)
	}

	if e.Status == EnrollmentCompleted {
		return e, nil
	}

	now := time.Now()
	certURL := fmt.Sprintf("https://certificates.onboarding.local/%s.pdf", uuid.NewString())
	e.Status = EnrollmentCompleted
	e.CompletedAt = &now
	e.CertificateURL = &certURL

	if err := s.repo.UpdateEnrollment(e); err != nil {
		s.logger.Error("failed to complete course", "course_id", courseID, "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to complete course", err)
	}

	s.logger.Info("course completed", "course_id", courseID, "user_id", userID)
	return e, nil
}

package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"github.com/frahmantamala/onboarding-management/internal/user"
)

// ProgressResult is what a transactional task write reports back: the
// recomputed aggregate and whether it just crossed the finish line.
type ProgressResult struct {
	Progress     int
	Status       string
	CompletedNow bool
}

type RepositoryAPI interface {
	GetTemplates() ([]Template, error)
	GetTemplateByID(id int64) (*Template, error)
	CreateTemplate(t *Template) error
	UpdateTemplate(t *Template) error
	DeleteTemplate(id int64) error

	GetTemplateTasks(templateID int64) ([]TemplateTask, error)
	GetTemplateTaskByID(id int64) (*TemplateTask, error)
	CreateTemplateTask(t *TemplateTask) error
	UpdateTemplateTask(t *TemplateTask) error
	DeleteTemplateTask(id int64) error

	GetOnboardingByUserID(userID int64) (*UserOnboarding, error)
	GetTasksByOnboardingID(onboardingID int64) ([]UserTask, error)
	GetTaskByID(id int64) (*UserTask, error)
	GetTasksByAssigneeRole(role string) ([]AssignedTask, error)

	// ReplaceUserTasks runs the propagation transaction: serialize on the
	// user, drop every existing task, reset the onboarding row and insert
	// the new tasks. Returns how many tasks were dropped.
	ReplaceUserTasks(userID, templateID int64, tasks []UserTask) (deleted int, err error)

	SaveTaskWithProgress(task *UserTask) (*ProgressResult, error)
	CreateTaskWithProgress(task *UserTask) (*ProgressResult, error)

	GetEmployeeProgressRows(now time.Time) ([]EmployeeProgress, error)
}

// UserDirectory is the slice of the user service the propagation engine
// needs: start dates, roles and manager links.
type UserDirectory interface {
	Get(id int64) (*user.User, error)
}

// CalendarPropagator rebuilds a user's event schedule after an onboarding
// template lands.
type CalendarPropagator interface {
	RecreateCalendar(ctx context.Context, userID int64) (deleted, created int, err error)
}

type Service struct {
	repo     RepositoryAPI
	users    UserDirectory
	calendar CalendarPropagator
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		eventBus: eventBus,
		logger:   logger.With("component", "onboarding_service"),
	}
}

func (s *Service) SetCalendar(calendar CalendarPropagator) {
	s.calendar = calendar
}

// --- templates ---

func (s *Service) ListTemplates() ([]Template, error) {
	templates, err := s.repo.GetTemplates()
	if err != nil {
		s.logger.Error("failed to list templates", "error", err)
		return nil, internal.NewInternalError("failed to list templates", err)
	}
	return templates, nil
}

func (s *Service) GetTemplate(id int64) (*Template, error) {
	tpl, err := s.repo.GetTemplateByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("template not found", internal.ErrCodeTemplateNotFound)
		}
		return nil, internal.NewInternalError("failed to get template", err)
	}
	return tpl, nil
}

func (s *Service) CreateTemplate(dto CreateTemplateDTO) (*Template, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	tpl := &Template{
		Name:        dto.Name,
		Description: dto.Description,
		JobTitle:    dto.JobTitle,
		IsActive:    true,
	}
	if err := s.repo.CreateTemplate(tpl); err != nil {
		s.logger.Error("failed to create template", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create template", err)
	}
	s.logger.Info("template created", "template_id", tpl.ID, "name", tpl.Name)
	return tpl, nil
}

func (s *Service) UpdateTemplate(id int64, dto UpdateTemplateDTO) (*Template, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	tpl, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if dto.Name != nil {
		tpl.Name = *dto.Name
	}
	if dto.Description != nil {
		tpl.Description = dto.Description
	}
	if dto.JobTitle != nil {
		tpl.JobTitle = dto.JobTitle
	}
	if dto.IsActive != nil {
		tpl.IsActive = *dto.IsActive
	}
	if err := s.repo.UpdateTemplate(tpl); err != nil {
		return nil, internal.NewInternalError("failed to update template", err)
	}
	return tpl, nil
}

func (s *Service) DeleteTemplate(id int64) error {
	if _, err := s.GetTemplate(id); err != nil {
		return err
	}
	if err := s.repo.DeleteTemplate(id); err != nil {
		return internal.NewInternalError("failed to delete template", err)
	}
	s.logger.Info("template deleted", "template_id", id)
	return nil
}

func (s *Service) ListTemplateTasks(templateID int64) ([]TemplateTask, error) {
	if _, err := s.GetTemplate(templateID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.GetTemplateTasks(templateID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list template tasks", err)
	}
	return tasks, nil
}

func (s *Service) CreateTemplateTask(templateID int64, dto CreateTemplateTaskDTO) (*TemplateTask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetTemplate(templateID); err != nil {
		return nil, err
	}
	task := &TemplateTask{
		TemplateID:   templateID,
		Title:        dto.Title,
		Description:  dto.Description,
		Category:     dto.Category,
		AssigneeRole: dto.AssigneeRole,
		DueDayOffset: dto.DueDayOffset,
		SortOrder:    dto.SortOrder,
	}
	if err := s.repo.CreateTemplateTask(task); err != nil {
		return nil, internal.NewInternalError("failed to create template task", err)
	}
	return task, nil
}

func (s *Service) UpdateTemplateTask(taskID int64, dto UpdateTemplateTaskDTO) (*TemplateTask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	task, err := s.repo.GetTemplateTaskByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("template task not found", internal.ErrCodeTaskNotFound)
		}
		return nil, internal.NewInternalError("failed to get template task", err)
	}
	if dto.Title != nil {
		task.Title = *dto.Title
	}
	if dto.Description != nil {
		task.Description = dto.Description
	}
	if dto.Category != nil {
		task.Category = *dto.Category
	}
	if dto.AssigneeRole != nil {
		task.AssigneeRole = dto.AssigneeRole
	}
	if dto.DueDayOffset != nil {
		task.DueDayOffset = *dto.DueDayOffset
	}
	if dto.SortOrder != nil {
		task.SortOrder = *dto.SortOrder
	}
	if err := s.repo.UpdateTemplateTask(task); err != nil {
		return nil, internal.NewInternalError("failed to update template task", err)
	}
	return task, nil
}

func (s *Service) DeleteTemplateTask(taskID int64) error {
	if _, err := s.repo.GetTemplateTaskByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError("template task not found", internal.ErrCodeTaskNotFound)
		}
		return internal.NewInternalError("failed to get template task", err)
	}
	if err := s.repo.DeleteTemplateTask(taskID); err != nil {
		return internal.NewInternalError("failed to delete template task", err)
	}
	return nil
}

// --- propagation ---

// AssignTemplate propagates a template onto a user, replacing whatever
// onboarding state they had.
func (s *Service) AssignTemplate(ctx context.Context, userID, templateID int64) error {
	_, _, err := s.ReassignTemplate(ctx, userID, templateID)
	return err
}

// ReassignTemplate is AssignTemplate returning the destructive diff.
func (s *Service) ReassignTemplate(ctx context.Context, userID, templateID int64) (deleted, created int, err error) {
	u, err := s.users.Get(userID)
	if err != nil {
		return 0, 0, err
	}
	tpl, err := s.GetTemplate(templateID)
	if err != nil {
		return 0, 0, err
	}

	rows, err := s.repo.GetTemplateTasks(templateID)
	if err != nil {
		return 0, 0, internal.NewInternalError("failed to load template tasks", err)
	}

	startDate := time.Now()
	if u.StartDate != nil {
		startDate = *u.StartDate
	}

	tasks := MaterializeTasks(0, userID, rows, startDate)

	deleted, err = s.repo.ReplaceUserTasks(userID, templateID, tasks)
	if err != nil {
		s.logger.Error("template propagation failed",
			"user_id", userID, "template_id", templateID, "error", err)
		return 0, 0, internal.NewInternalError("failed to assign template", err)
	}
	created = len(tasks)

	s.logger.Info("template assigned",
		"user_id", userID, "template_id", templateID,
		"deleted_tasks", deleted, "created_tasks", created)

	if s.calendar != nil {
		if _, _, err := s.calendar.RecreateCalendar(ctx, userID); err != nil {
			// Tasks committed; a broken schedule can be rebuilt from the
			// admin endpoint, so do not fail the assignment.
			s.logger.Error("calendar rebuild failed after assignment",
				"user_id", userID, "error", err)
		}
	}

	s.eventBus.Publish(ctx, events.NewOnboardingAssignedEvent(
		u.ID, u.Name, tpl.ID, tpl.Name, u.ManagerID, created))

	return deleted, created, nil
}

// --- my onboarding / tasks ---

type OnboardingView struct {
	Onboarding UserOnboarding `json:"onboarding"`
	Tasks      []UserTask     `json:"tasks"`
	Delayed    bool           `json:"delayed"`
}

func (s *Service) MyOnboarding(userID int64) (*OnboardingView, error) {
	ob, err := s.repo.GetOnboardingByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("no active onboarding", internal.ErrCodeNoActiveOnboarding)
		}
		return nil, internal.NewInternalError("failed to get onboarding", err)
	}
	tasks, err := s.repo.GetTasksByOnboardingID(ob.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load tasks", err)
	}
	return &OnboardingView{
		Onboarding: *ob,
		Tasks:      tasks,
		Delayed:    IsDelayed(tasks, time.Now()),
	}, nil
}

// AssignedTasks lists the open tasks routed to the actor's role, joined
// with the employee each one was raised for. Employees have no role queue;
// they see their own tasks through MyOnboarding.
func (s *Service) AssignedTasks(actor *internal.SessionUser) ([]AssignedTask, error) {
	if actor.Role == permission.RoleEmployee {
		return nil, internal.NewForbiddenError("no assigned task queue for this role", internal.ErrCodeUnauthorizedAccess)
	}
	tasks, err := s.repo.GetTasksByAssigneeRole(actor.Role)
	if err != nil {
		s.logger.Error("failed to load assigned tasks", "role", actor.Role, "error", err)
		return nil, internal.NewInternalError("failed to load assigned tasks", err)
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task through its lifecycle and recomputes the
// onboarding aggregate in the same transaction. Employees may only touch
// their own tasks.
func (s *Service) UpdateTaskStatus(ctx context.Context, actor *internal.SessionUser, taskID int64, dto UpdateTaskStatusDTO) (*UserTask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	task, err := s.repo.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("task not found", internal.ErrCodeTaskNotFound)
		}
		return nil, internal.NewInternalError("failed to get task", err)
	}

	if task.UserID != actor.ID && !actor.HasPermission(permission.ManageEmployees) {
		return nil, internal.NewForbiddenError("cannot modify another user's task", internal.ErrCodeUnauthorizedAccess)
	}

	wasCompleted := task.Status == TaskStatusCompleted
	task.Status = dto.Status
	if dto.Status == TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	result, err := s.repo.SaveTaskWithProgress(task)
	if err != nil {
		s.logger.Error("failed to save task", "task_id", taskID, "error", err)
		return nil, internal.NewInternalError("failed to update task", err)
	}

	s.logger.Info("task status updated",
		"task_id", taskID, "user_id", task.UserID,
		"status", task.Status, "progress", result.Progress)

	if task.Status == TaskStatusCompleted && !wasCompleted {
		if u, err := s.users.Get(task.UserID); err == nil {
			s.eventBus.Publish(ctx, events.NewTaskCompletedEvent(task.ID, u.ID, u.Name, task.Title, u.ManagerID))
			if result.CompletedNow {
				s.eventBus.Publish(ctx, events.NewOnboardingCompletedEvent(task.OnboardingID, u.ID, u.Name, u.ManagerID))
			}
		}
	}

	return task, nil
}

// AdminCreateTask attaches an ad hoc task to a user's active onboarding.
func (s *Service) AdminCreateTask(ctx context.Context, dto AdminCreateTaskDTO) (*UserTask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ob, err := s.repo.GetOnboardingByUserID(dto.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("user has no active onboarding", internal.ErrCodeNoActiveOnboarding)
		}
		return nil, internal.NewInternalError("failed to get onboarding", err)
	}

	task := &UserTask{
		OnboardingID: ob.ID,
		UserID:       dto.UserID,
		Title:        dto.Title,
		Description:  dto.Description,
		Category:     dto.Category,
		AssigneeRole: dto.AssigneeRole,
		Status:       TaskStatusPending,
		DueDate:      dto.ParsedDueDate(),
	}

	result, err := s.repo.CreateTaskWithProgress(task)
	if err != nil {
		s.logger.Error("failed to create task", "user_id", dto.UserID, "error", err)
		return nil, internal.NewInternalError("failed to create task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID, "user_id", dto.UserID, "progress", result.Progress)
	return task, nil
}

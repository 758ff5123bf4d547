package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/document"
	"github.com/frahmantamala/onboarding-management/internal/onboarding"
)

// advisoryLockClass namespaces the per-user propagation locks so they never
// collide with other advisory lock users on the same database.
const advisoryLockClass = 71001

type OnboardingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// --- templates ---

func (r *OnboardingRepository) GetTemplates() ([]onboarding.Template, error) {
	var templates []onboarding.Template
	err := r.db.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *OnboardingRepository) GetTemplateByID(id int64) (*onboarding.Template, error) {
	var tpl onboarding.Template
	if err := r.db.First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *OnboardingRepository) CreateTemplate(t *onboarding.Template) error {
	return r.db.Create(t).Error
}

func (r *OnboardingRepository) UpdateTemplate(t *onboarding.Template) error {
	return r.db.Save(t).Error
}

func (r *OnboardingRepository) DeleteTemplate(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&onboarding.TemplateTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&onboarding.Template{}, id).Error
	})
}

func (r *OnboardingRepository) GetTemplateTasks(templateID int64) ([]onboarding.TemplateTask, error) {
	var tasks []onboarding.TemplateTask
	err := r.db.
		Where("template_id = ?", templateID).
		Order("sort_order ASC, due_day_offset ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *OnboardingRepository) GetTemplateTaskByID(id int64) (*onboarding.TemplateTask, error) {
	var task onboarding.TemplateTask
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *OnboardingRepository) CreateTemplateTask(t *onboarding.TemplateTask) error {
	return r.db.Create(t).Error
}

func (r *OnboardingRepository) UpdateTemplateTask(t *onboarding.TemplateTask) error {
	return r.db.Save(t).Error
}

func (r *OnboardingRepository) DeleteTemplateTask(id int64) error {
	return r.db.Delete(&onboarding.TemplateTask{}, id).Error
}

// --- user onboardings ---

func (r *OnboardingRepository) GetOnboardingByUserID(userID int64) (*onboarding.UserOnboarding, error) {
	var ob onboarding.UserOnboarding
	if err := r.db.Where("user_id = ?", userID).First(&ob).Error; err != nil {
		return nil, err
	}
	return &ob, nil
}

func (r *OnboardingRepository) GetTasksByOnboardingID(onboardingID int64) ([]onboarding.UserTask, error) {
	var tasks []onboarding.UserTask
	err := r.db.
		Where("onboarding_id = ?", onboardingID).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *OnboardingRepository) GetTaskByID(id int64) (*onboarding.UserTask, error) {
	var task onboarding.UserTask
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasksByAssigneeRole returns the open tasks routed to a support role,
// with the owning employee's name and email for the queue view.
func (r *OnboardingRepository) GetTasksByAssigneeRole(role string) ([]onboarding.AssignedTask, error) {
	var rows []onboarding.AssignedTask
	err := r.db.
		Table("user_tasks t").
		Select("t.*, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON u.id = t.user_id").
		Where("t.assignee_role = ? AND t.status <> ?", role, onboarding.TaskStatusCompleted).
		Order("t.due_date ASC, t.id ASC").
		Find(&rows).Error
	return rows, err
}

// lockUser serializes concurrent propagations for one user. The lock is
// transaction scoped; Postgres releases it at commit or rollback.
func (r *OnboardingRepository) lockUser(tx *gorm.DB, userID int64) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", advisoryLockClass, int32(userID)).Error
}

// ReplaceUserTasks drops every task the user has, resets (or creates) the
// onboarding row and inserts the materialized tasks. Tasks in the
// DOCUMENT_UPLOAD category also get a pending document row.
func (r *OnboardingRepository) ReplaceUserTasks(userID, templateID int64, tasks []onboarding.UserTask) (int, error) {
	var deleted int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.lockUser(tx, userID); err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&onboarding.UserTask{})
		if res.Error != nil {
			return res.Error
		}
		deleted = int(res.RowsAffected)

		now := time.Now()
		ob := onboarding.UserOnboarding{}
		err := tx.Where("user_id = ?", userID).First(&ob).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ob = onboarding.UserOnboarding{
				UserID:     userID,
				TemplateID: &templateID,
				Status:     onboarding.StatusInProgress,
				Progress:   0,
				StartedAt:  &now,
			}
			if err := tx.Create(&ob).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			ob.TemplateID = &templateID
			ob.Status = onboarding.StatusInProgress
			ob.Progress = 0
			ob.StartedAt = &now
			ob.CompletedAt = nil
			if err := tx.Save(&ob).Error; err != nil {
				return err
			}
		}

		for i := range tasks {
			tasks[i].OnboardingID = ob.ID
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
			if tasks[i].Category == onboarding.TaskCategoryDocumentUpload {
				doc := document.Document{
					UserID: userID,
					TaskID: &tasks[i].ID,
					Name:   tasks[i].Title,
					Status: document.StatusPending,
				}
				if err := tx.Create(&doc).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// recomputeProgress recalculates the aggregate inside the caller's
// transaction and reports whether the onboarding just completed.
func recomputeProgress(tx *gorm.DB, onboardingID int64) (*onboarding.ProgressResult, error) {
	var total, completed int64
	if err := tx.Model(&onboarding.UserTask{}).
		Where("onboarding_id = ?", onboardingID).
		Count(&total).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&onboarding.UserTask{}).
		Where("onboarding_id = ? AND status = ?", onboardingID, onboarding.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	var ob onboarding.UserOnboarding
	if err := tx.First(&ob, onboardingID).Error; err != nil {
		return nil, err
	}

	progress := onboarding.ComputeProgress(int(completed), int(total))
	wasCompleted := ob.Status == onboarding.StatusCompleted

	ob.Progress = progress
	if progress == 100 {
		ob.Status = onboarding.StatusCompleted
		if ob.CompletedAt == nil {
			now := time.Now()
			ob.CompletedAt = &now
		}
	} else {
		ob.Status = onboarding.StatusInProgress
		ob.CompletedAt = nil
	}

	if err := tx.Save(&ob).Error; err != nil {
		return nil, err
	}

	return &onboarding.ProgressResult{
		Progress:     progress,
		Status:       ob.Status,
		CompletedNow: !wasCompleted && ob.Status == onboarding.StatusCompleted,
	}, nil
}

func (r *OnboardingRepository) SaveTaskWithProgress(task *onboarding.UserTask) (*onboarding.ProgressResult, error) {
	var result *onboarding.ProgressResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.lockUser(tx, task.UserID); err != nil {
			return err
		}
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		var err error
		result, err = recomputeProgress(tx, task.OnboardingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *OnboardingRepository) CreateTaskWithProgress(task *onboarding.UserTask) (*onboarding.ProgressResult, error) {
	var result *onboarding.ProgressResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.lockUser(tx, task.UserID); err != nil {
			return err
		}
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		var err error
		result, err = recomputeProgress(tx, task.OnboardingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetEmployeeProgressRows joins users with their onboarding and derives the
// delayed flag from task due dates at query time.
func (r *OnboardingRepository) GetEmployeeProgressRows(now time.Time) ([]onboarding.EmployeeProgress, error) {
	var rows []onboarding.EmployeeProgress
	err := r.db.
		Table("users u").
		Select(`u.id AS user_id, u.name, u.department, u.start_date,
			COALESCE(o.status, 'NOT_STARTED') AS status,
			COALESCE(o.progress, 0) AS progress,
			EXISTS (
				SELECT 1 FROM user_tasks t
				WHERE t.user_id = u.id
				AND (t.status = 'OVERDUE'
					OR (t.status <> 'COMPLETED' AND t.due_date < ?))
			) AS delayed`, now).
		Joins("LEFT JOIN user_onboardings o ON o.user_id = u.id").
		Where("u.is_active = true").
		Find(&rows).Error
	return rows, err
}

package onboarding

import (
	"math"
	"time"
)

const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusOverdue    = "OVERDUE"
)

const (
	TaskCategoryGeneral        = "GENERAL"
	TaskCategoryDocumentUpload = "DOCUMENT_UPLOAD"
	TaskCategoryTraining       = "TRAINING"
	TaskCategoryMeeting        = "MEETING"
	TaskCategoryEquipment      = "EQUIPMENT"
)

var validTaskStatuses = map[string]bool{
	TaskStatusPending:    true,
	TaskStatusInProgress: true,
	TaskStatusCompleted:  true,
	TaskStatusOverdue:    true,
}

func ValidTaskStatus(status string) bool {
	return validTaskStatuses[status]
}

// Template is a reusable onboarding plan, optionally bound to a job title.
type Template struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	JobTitle    *string   `json:"job_title,omitempty" gorm:"column:job_title"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Template) TableName() string {
	return "onboarding_templates"
}

// TemplateTask is one row of a template. DueDayOffset is relative to the
// employee's start date at propagation time.
type TemplateTask struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	TemplateID   int64     `json:"template_id" gorm:"column:template_id;not null;index"`
	Title        string    `json:"title" gorm:"column:title;not null"`
	Description  *string   `json:"description,omitempty" gorm:"column:description"`
	Category     string    `json:"category" gorm:"column:category;not null;default:GENERAL"`
	AssigneeRole *string   `json:"assignee_role,omitempty" gorm:"column:assignee_role"`
	DueDayOffset int       `json:"due_day_offset" gorm:"column:due_day_offset;not null;default:0"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (TemplateTask) TableName() string {
	return "template_tasks"
}

// UserOnboarding tracks one employee's run through a template. One row per
// user; reassignment reuses the row.
type UserOnboarding struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	TemplateID  *int64     `json:"template_id,omitempty" gorm:"column:template_id"`
	Status      string     `json:"status" gorm:"column:status;not null;default:NOT_STARTED"`
	Progress    int        `json:"progress" gorm:"column:progress;not null;default:0"`
	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"column:started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (UserOnboarding) TableName() string {
	return "user_onboardings"
}

// UserTask is a concrete task materialized from a template row, or created
// ad hoc by an admin.
type UserTask struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	OnboardingID   int64      `json:"onboarding_id" gorm:"column:onboarding_id;not null;index"`
	UserID         int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	TemplateTaskID *int64     `json:"template_task_id,omitempty" gorm:"column:template_task_id"`
	Title          string     `json:"title" gorm:"column:title;not null"`
	Description    *string    `json:"description,omitempty" gorm:"column:description"`
	Category       string     `json:"category" gorm:"column:category;not null;default:GENERAL"`
	AssigneeRole   *string    `json:"assignee_role,omitempty" gorm:"column:assignee_role"`
	Status         string     `json:"status" gorm:"column:status;not null;default:PENDING"`
	DueDate        *time.Time `json:"due_date,omitempty" gorm:"column:due_date"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (UserTask) TableName() string {
	return "user_tasks"
}

// AssignedTask is one row of a role's work queue: an open task routed to a
// support role (IT, FACILITIES, ...) joined with the employee it was raised
// for.
type AssignedTask struct {
	UserTask
	UserName  string `json:"user_name" gorm:"column:user_name"`
	UserEmail string `json:"user_email" gorm:"column:user_email"`
}

// ComputeProgress returns the completion percentage, rounded to the nearest
// integer. An onboarding with no tasks counts as 0, never 100.
func ComputeProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// IsDelayed reports whether any task is overdue, either flagged explicitly
// or past its due date without being completed. Computed at read time so a
// slipped deadline shows up without a background sweep.
func IsDelayed(tasks []UserTask, now time.Time) bool {
	for _, t := range tasks {
		if t.Status == TaskStatusOverdue {
			return true
		}
		if t.Status != TaskStatusCompleted && t.DueDate != nil && t.DueDate.Before(now) {
			return true
		}
	}
	return false
}

// MaterializeTasks expands template rows into user tasks. Due dates are the
// start date plus each row's day offset; ordering follows the template.
func MaterializeTasks(onboardingID, userID int64, rows []TemplateTask, startDate time.Time) []UserTask {
	tasks := make([]UserTask, 0, len(rows))
	for _, row := range rows {
		row := row
		due := startDate.AddDate(0, 0, row.DueDayOffset)
		tasks = append(tasks, UserTask{
			OnboardingID:   onboardingID,
			UserID:         userID,
			TemplateTaskID: &row.ID,
			Title:          row.Title,
			Description:    row.Description,
			Category:       row.Category,
			AssigneeRole:   row.AssigneeRole,
			Status:         TaskStatusPending,
			DueDate:        &due,
		})
	}
	return tasks
}

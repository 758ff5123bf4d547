package onboarding_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/onboarding"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"github.com/frahmantamala/onboarding-management/internal/user"
)

func TestOnboarding(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Onboarding Suite")
}

var _ = Describe("ComputeProgress", func() {
	It("returns 0 for an empty task set", func() {
		Expect(onboarding.ComputeProgress(0, 0)).To(Equal(0))
	})

	It("rounds to the nearest integer", func() {
		Expect(onboarding.ComputeProgress(3, 7)).To(Equal(43))
		Expect(onboarding.ComputeProgress(1, 3)).To(Equal(33))
		Expect(onboarding.ComputeProgress(2, 3)).To(Equal(67))
	})

	It("reaches 100 only when everything is done", func() {
		Expect(onboarding.ComputeProgress(6, 7)).To(Equal(86))
		Expect(onboarding.ComputeProgress(7, 7)).To(Equal(100))
	})
})

var _ = Describe("IsDelayed", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	})

	taskDue := func(status string, due time.Time) onboarding.UserTask {
		return onboarding.UserTask{Status: status, DueDate: &due}
	}

	It("is false with no tasks", func() {
		Expect(onboarding.IsDelayed(nil, now)).To(BeFalse())
	})

	It("flags tasks explicitly marked overdue", func() {
		tasks := []onboarding.UserTask{
			{Status: onboarding.TaskStatusOverdue},
		}
		Expect(onboarding.IsDelayed(tasks, now)).To(BeTrue())
	})

	It("flags incomplete tasks past their due date", func() {
		tasks := []onboarding.UserTask{
			taskDue(onboarding.TaskStatusPending, now.Add(-time.Hour)),
		}
		Expect(onboarding.IsDelayed(tasks, now)).To(BeTrue())
	})

	It("ignores completed tasks past their due date", func() {
		tasks := []onboarding.UserTask{
			taskDue(onboarding.TaskStatusCompleted, now.Add(-72*time.Hour)),
		}
		Expect(onboarding.IsDelayed(tasks, now)).To(BeFalse())
	})

	It("ignores pending tasks still inside their due date", func() {
		tasks := []onboarding.UserTask{
			taskDue(onboarding.TaskStatusPending, now.Add(time.Hour)),
			taskDue(onboarding.TaskStatusInProgress, now.Add(48*time.Hour)),
		}
		Expect(onboarding.IsDelayed(tasks, now)).To(BeFalse())
	})

	It("ignores tasks without a due date", func() {
		tasks := []onboarding.UserTask{
			{Status: onboarding.TaskStatusPending},
		}
		Expect(onboarding.IsDelayed(tasks, now)).To(BeFalse())
	})
})

var _ = Describe("MaterializeTasks", func() {
	var (
		startDate time.Time
		rows      []onboarding.TemplateTask
	)

	itRole := "IT"

	BeforeEach(func() {
		startDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		rows = []onboarding.TemplateTask{
			{ID: 11, Title: "Sign contract", Category: onboarding.TaskCategoryDocumentUpload, DueDayOffset: 0},
			{ID: 12, Title: "Meet the team", Category: onboarding.TaskCategoryMeeting, DueDayOffset: 1},
			{ID: 13, Title: "Security training", Category: onboarding.TaskCategoryTraining, DueDayOffset: 2},
			{ID: 14, Title: "Set up laptop", Category: onboarding.TaskCategoryEquipment, AssigneeRole: &itRole, DueDayOffset: 4},
		}
	})

	It("offsets each due date from the start date", func() {
		tasks := onboarding.MaterializeTasks(1, 42, rows, startDate)

		Expect(tasks).To(HaveLen(4))
		for i, offset := range []int{0, 1, 2, 4} {
			Expect(*tasks[i].DueDate).To(Equal(startDate.AddDate(0, 0, offset)))
		}
	})

	It("starts every task pending and linked to its template row", func() {
		tasks := onboarding.MaterializeTasks(1, 42, rows, startDate)

		for i, task := range tasks {
			Expect(task.Status).To(Equal(onboarding.TaskStatusPending))
			Expect(task.UserID).To(Equal(int64(42)))
			Expect(*task.TemplateTaskID).To(Equal(rows[i].ID))
			Expect(task.Title).To(Equal(rows[i].Title))
			Expect(task.Category).To(Equal(rows[i].Category))
		}
	})

	It("carries the assignee role from the template row", func() {
		tasks := onboarding.MaterializeTasks(1, 42, rows, startDate)

		for i := 0; i < 3; i++ {
			Expect(tasks[i].AssigneeRole).To(BeNil())
		}
		Expect(tasks[3].AssigneeRole).To(HaveValue(Equal("IT")))
	})

	It("is deterministic for the same inputs", func() {
		first := onboarding.MaterializeTasks(1, 42, rows, startDate)
		second := onboarding.MaterializeTasks(1, 42, rows, startDate)
		Expect(second).To(Equal(first))
	})

	It("returns an empty slice for templates with no rows", func() {
		Expect(onboarding.MaterializeTasks(1, 42, nil, startDate)).To(BeEmpty())
	})
})

type stubRepo struct {
	queue    []onboarding.AssignedTask
	queueErr error
	lastRole string
}

func (r *stubRepo) GetTemplates() ([]onboarding.Template, error)           { return nil, nil }
func (r *stubRepo) GetTemplateByID(int64) (*onboarding.Template, error)    { return nil, nil }
func (r *stubRepo) CreateTemplate(*onboarding.Template) error              { return nil }
func (r *stubRepo) UpdateTemplate(*onboarding.Template) error              { return nil }
func (r *stubRepo) DeleteTemplate(int64) error                             { return nil }
func (r *stubRepo) GetTemplateTasks(int64) ([]onboarding.TemplateTask, error) {
	return nil, nil
}
func (r *stubRepo) GetTemplateTaskByID(int64) (*onboarding.TemplateTask, error) { return nil, nil }
func (r *stubRepo) CreateTemplateTask(*onboarding.TemplateTask) error           { return nil }
func (r *stubRepo) UpdateTemplateTask(*onboarding.TemplateTask) error           { return nil }
func (r *stubRepo) DeleteTemplateTask(int64) error                              { return nil }
func (r *stubRepo) GetOnboardingByUserID(int64) (*onboarding.UserOnboarding, error) {
	return nil, nil
}
func (r *stubRepo) GetTasksByOnboardingID(int64) ([]onboarding.UserTask, error) { return nil, nil }
func (r *stubRepo) GetTaskByID(int64) (*onboarding.UserTask, error)             { return nil, nil }
func (r *stubRepo) GetTasksByAssigneeRole(role string) ([]onboarding.AssignedTask, error) {
	r.lastRole = role
	return r.queue, r.queueErr
}
func (r *stubRepo) ReplaceUserTasks(int64, int64, []onboarding.UserTask) (int, error) {
	return 0, nil
}
func (r *stubRepo) SaveTaskWithProgress(*onboarding.UserTask) (*onboarding.ProgressResult, error) {
	return nil, nil
}
func (r *stubRepo) CreateTaskWithProgress(*onboarding.UserTask) (*onboarding.ProgressResult, error) {
	return nil, nil
}
func (r *stubRepo) GetEmployeeProgressRows(time.Time) ([]onboarding.EmployeeProgress, error) {
	return nil, nil
}

type stubDirectory struct{}

func (stubDirectory) Get(int64) (*user.User, error) { return nil, nil }

var _ = Describe("Service.AssignedTasks", func() {
	var (
		repo    *stubRepo
		service *onboarding.Service
	)

	BeforeEach(func() {
		repo = &stubRepo{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = onboarding.NewService(repo, stubDirectory{}, events.NewEventBus(lg), lg)
	})

	It("returns the queue for the actor's role", func() {
		repo.queue = []onboarding.AssignedTask{
			{UserTask: onboarding.UserTask{ID: 1, Title: "Provision laptop"}, UserName: "alice"},
		}
		actor := &internal.SessionUser{ID: 9, Role: permission.RoleIT}

		tasks, err := service.AssignedTasks(actor)
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(1))
		Expect(repo.lastRole).To(Equal(permission.RoleIT))
	})

	It("forbids employees, who have no role queue", func() {
		actor := &internal.SessionUser{ID: 9, Role: permission.RoleEmployee}

		_, err := service.AssignedTasks(actor)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		Expect(repo.lastRole).To(BeEmpty())
	})

	It("wraps repository failures", func() {
		repo.queueErr = errors.New("connection reset")
		actor := &internal.SessionUser{ID: 9, Role: permission.RoleFacilities}

		_, err := service.AssignedTasks(actor)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})

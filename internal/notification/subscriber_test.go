package notification_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/notification"
	"github.com/frahmantamala/onboarding-management/internal/permission"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

type mockNotificationRepository struct {
	notifications []notification.Notification
	roleHolders   map[string][]int64
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{roleHolders: map[string][]int64{}}
}

func (m *mockNotificationRepository) GetByUserID(userID int64) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) GetByID(id int64) (*notification.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepository) Create(n *notification.Notification) error {
	m.nextID++
	n.ID = m.nextID
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepository) MarkRead(id int64) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepository) MarkAllRead(userID int64) error {
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) GetUserIDsByRoles(roles []string) ([]int64, error) {
	var out []int64
	for _, role := range roles {
		out = append(out, m.roleHolders[role]...)
	}
	return out, nil
}

var _ = Describe("NotificationSubscriber", func() {
	var (
		svc      *notification.Service
		bus      *events.EventBus
		mockRepo *mockNotificationRepository
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockNotificationRepository()
		ctx = context.Background()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = notification.NewService(mockRepo, lg)

		bus = events.NewEventBus(lg)
		notification.NewSubscriber(svc, lg).Register(bus)
	})

	notificationsFor := func(userID int64) []notification.Notification {
		out, err := svc.ListForUser(userID)
		Expect(err).NotTo(HaveOccurred())
		return out
	}

	Describe("employee created", func() {
		It("welcomes the new hire and tells manager and buddy", func() {
			managerID, buddyID := int64(2), int64(3)
			e := events.NewEmployeeCreatedEvent(1, "Jane Doe", "jane@onboarding.local", &managerID, &buddyID)

			Expect(bus.PublishSync(ctx, e)).To(Succeed())

			Expect(notificationsFor(1)).To(HaveLen(1))
			Expect(notificationsFor(1)[0].Title).To(Equal("Welcome aboard"))
			Expect(notificationsFor(2)).To(HaveLen(1))
			Expect(notificationsFor(3)).To(HaveLen(1))
			Expect(notificationsFor(3)[0].Type).To(Equal(notification.TypeBuddyAssigned))
		})
	})

	Describe("onboarding assigned", func() {
		It("fans out to the employee and provisioning staff", func() {
			mockRepo.roleHolders[permission.RoleIT] = []int64{10}
			mockRepo.roleHolders[permission.RoleFacilities] = []int64{11}

			e := events.NewOnboardingAssignedEvent(1, "Jane Doe", 5, "Engineering Onboarding", nil, 7)
			Expect(bus.PublishSync(ctx, e)).To(Succeed())

			Expect(notificationsFor(1)[0].Message).To(ContainSubstring("7 tasks"))
			Expect(notificationsFor(10)).To(HaveLen(1))
			Expect(notificationsFor(11)).To(HaveLen(1))
		})
	})

	Describe("task completed", func() {
		It("notifies the manager only", func() {
			managerID := int64(2)

			e := events.NewTaskCompletedEvent(9, 1, "Jane Doe", "Sign NDA", &managerID)
			Expect(bus.PublishSync(ctx, e)).To(Succeed())
			Expect(notificationsFor(2)).To(HaveLen(1))
			Expect(notificationsFor(1)).To(BeEmpty())
		})

		It("stays quiet when there is no manager", func() {
			e := events.NewTaskCompletedEvent(9, 1, "Jane Doe", "Sign NDA", nil)
			Expect(bus.PublishSync(ctx, e)).To(Succeed())
			Expect(mockRepo.notifications).To(BeEmpty())
		})
	})

	Describe("policy accepted", func() {
		It("confirms the acceptance to the employee", func() {
			e := events.NewPolicyAcceptedEvent(4, "Code of Conduct", 2, 1)
			Expect(bus.PublishSync(ctx, e)).To(Succeed())

			got := notificationsFor(1)
			Expect(got).To(HaveLen(1))
			Expect(got[0].Message).To(ContainSubstring("version 2"))
			Expect(got[0].Type).To(Equal(notification.TypePolicyAccepted))
		})
	})

	Describe("feedback received", func() {
		It("alerts HR without exposing the author", func() {
			mockRepo.roleHolders[permission.RoleHR] = []int64{20, 21}

			e := events.NewFeedbackReceivedEvent(8, 1, "NEGATIVE")
			Expect(bus.PublishSync(ctx, e)).To(Succeed())

			Expect(notificationsFor(20)).To(HaveLen(1))
			Expect(notificationsFor(21)).To(HaveLen(1))
			Expect(notificationsFor(1)).To(BeEmpty())
			Expect(notificationsFor(20)[0].Message).NotTo(ContainSubstring("NEGATIVE"))
		})
	})
})

var _ = Describe("NotificationService", func() {
	var (
		svc      *notification.Service
		mockRepo *mockNotificationRepository
	)

	BeforeEach(func() {
		mockRepo = newMockNotificationRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = notification.NewService(mockRepo, lg)
	})

	Describe("MarkRead", func() {
		It("lets the owner mark their notification read", func() {
			Expect(svc.Notify(1, "Hello", "World", notification.TypeWelcome)).To(Succeed())

			actor := &internal.SessionUser{ID: 1}
			Expect(svc.MarkRead(actor, 1)).To(Succeed())

			count, err := svc.UnreadCount(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("forbids touching another user's notification", func() {
			Expect(svc.Notify(1, "Hello", "World", notification.TypeWelcome)).To(Succeed())

			actor := &internal.SessionUser{ID: 2}
			err := svc.MarkRead(actor, 1)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})
	})

	Describe("MarkAllRead", func() {
		It("clears only the caller's inbox", func() {
			Expect(svc.Notify(1, "A", "a", notification.TypeWelcome)).To(Succeed())
			Expect(svc.Notify(1, "B", "b", notification.TypeWelcome)).To(Succeed())
			Expect(svc.Notify(2, "C", "c", notification.TypeWelcome)).To(Succeed())

			Expect(svc.MarkAllRead(1)).To(Succeed())

			count, err := svc.UnreadCount(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())

			count, err = svc.UnreadCount(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})

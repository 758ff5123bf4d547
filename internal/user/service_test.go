package user_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"github.com/frahmantamala/onboarding-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users  map[int64]*user.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[int64]*user.User{}}
}

func (m *mockUserRepository) GetAll() ([]user.UserWithOnboarding, error) {
	var out []user.UserWithOnboarding
	for _, u := range m.users {
		out = append(out, user.UserWithOnboarding{User: *u})
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetManagers() ([]user.Manager, error) {
	var out []user.Manager
	for _, u := range m.users {
		if u.Role == permission.RoleManager || u.Role == permission.RoleHR {
			out = append(out, user.Manager{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (m *mockUserRepository) Create(u *user.User) error {
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

type mockAssigner struct {
	calls       []int64
	templateIDs []int64
	assignError error
}

func (m *mockAssigner) AssignTemplate(_ context.Context, userID, templateID int64) error {
	if m.assignError != nil {
		return m.assignError
	}
	m.calls = append(m.calls, userID)
	m.templateIDs = append(m.templateIDs, templateID)
	return nil
}

var _ = Describe("UserService", func() {
	var (
		svc      *user.Service
		mockRepo *mockUserRepository
		assigner *mockAssigner
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		assigner = &mockAssigner{}
		ctx = context.Background()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = user.NewService(mockRepo, events.NewEventBus(lg), bcrypt.MinCost, lg)
		svc.SetAssigner(assigner)
	})

	validDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			Email:    "jane@onboarding.local",
			Password: "correcthorse",
			Name:     "Jane Doe",
			Role:     permission.RoleEmployee,
		}
	}

	Describe("Create", func() {
		It("hashes the password before storing", func() {
			u, err := svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(u.PasswordHash).NotTo(Equal("correcthorse"))
			Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correcthorse"))).To(Succeed())
			Expect(u.IsActive).To(BeTrue())
		})

		It("rejects duplicate emails", func() {
			_, err := svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, validDTO())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEmail))
		})

		It("rejects short passwords and malformed emails", func() {
			dto := validDTO()
			dto.Password = "short"
			_, err := svc.Create(ctx, dto)
			Expect(err).To(HaveOccurred())

			dto = validDTO()
			dto.Email = "not-an-email"
			_, err = svc.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("propagates the onboarding template when one is given", func() {
			dto := validDTO()
			templateID := int64(3)
			dto.TemplateID = &templateID

			u, err := svc.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(assigner.calls).To(Equal([]int64{u.ID}))
			Expect(assigner.templateIDs).To(Equal([]int64{3}))
		})

		It("skips propagation when no template is given", func() {
			_, err := svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(assigner.calls).To(BeEmpty())
		})

		It("surfaces assignment failures after the account is created", func() {
			assigner.assignError = internal.NewNotFoundError("template not found", internal.ErrCodeTemplateNotFound)
			dto := validDTO()
			templateID := int64(99)
			dto.TemplateID = &templateID

			_, err := svc.Create(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeTemplateNotFound))

			// The account itself stays.
			_, err = mockRepo.GetByEmail("jane@onboarding.local")
			Expect(err).NotTo(HaveOccurred())
		})

		It("parses the start date", func() {
			dto := validDTO()
			start := "2025-06-02"
			dto.StartDate = &start

			u, err := svc.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.StartDate).NotTo(BeNil())
			Expect(u.StartDate.Format("2006-01-02")).To(Equal("2025-06-02"))
		})
	})

	Describe("Update", func() {
		It("refuses to reuse another user's email", func() {
			first, err := svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			other := validDTO()
			other.Email = "john@onboarding.local"
			_, err = svc.Create(ctx, other)
			Expect(err).NotTo(HaveOccurred())

			email := "john@onboarding.local"
			_, err = svc.Update(ctx, first.ID, user.UpdateUserDTO{Email: &email})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEmail))
		})

		It("assigns a buddy", func() {
			buddy, err := svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			dto := validDTO()
			dto.Email = "john@onboarding.local"
			u, err := svc.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			updated, err := svc.Update(ctx, u.ID, user.UpdateUserDTO{BuddyID: &buddy.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BuddyID).NotTo(BeNil())
			Expect(*updated.BuddyID).To(Equal(buddy.ID))
		})

		It("returns not found for unknown users", func() {
			name := "Nobody"
			_, err := svc.Update(ctx, 42, user.UpdateUserDTO{Name: &name})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUserNotFound))
		})
	})

	Describe("Managers", func() {
		It("lists only manager and HR accounts", func() {
			mgr := validDTO()
			mgr.Email = "boss@onboarding.local"
			mgr.Role = permission.RoleManager
			_, err := svc.Create(ctx, mgr)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			managers, err := svc.Managers()
			Expect(err).NotTo(HaveOccurred())
			Expect(managers).To(HaveLen(1))
			Expect(managers[0].Email).To(Equal("boss@onboarding.local"))
		})
	})
})

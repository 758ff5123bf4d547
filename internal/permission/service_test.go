package permission_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/onboarding-management/internal/permission"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Suite")
}

// Mock repository for testing
type mockGrantRepository struct {
	grants      []permission.RolePermission
	countError  error
	getError    error
	insertError error
	deleteError error
	nextID      int64
}

func newMockGrantRepository() *mockGrantRepository {
	return &mockGrantRepository{nextID: 1}
}

func (m *mockGrantRepository) Count() (int64, error) {
	if m.countError != nil {
		return 0, m.countError
	}
	return int64(len(m.grants)), nil
}

func (m *mockGrantRepository) GetAll() ([]permission.RolePermission, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.grants, nil
}

func (m *mockGrantRepository) GetByRole(role string) ([]permission.RolePermission, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []permission.RolePermission
	for _, g := range m.grants {
		if g.Role == role {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGrantRepository) Insert(grant *permission.RolePermission) error {
	if m.insertError != nil {
		return m.insertError
	}
	// duplicate pairs are swallowed, mirroring ON CONFLICT DO NOTHING
	for _, g := range m.grants {
		if g.Role == grant.Role && g.Permission == grant.Permission {
			return nil
		}
	}
	grant.ID = m.nextID
	m.nextID++
	m.grants = append(m.grants, *grant)
	return nil
}

func (m *mockGrantRepository) Delete(role, perm string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	var kept []permission.RolePermission
	for _, g := range m.grants {
		if g.Role == role && g.Permission == perm {
			continue
		}
		kept = append(kept, g)
	}
	m.grants = kept
	return nil
}

var _ = Describe("PermissionService", func() {
	var (
		svc      *permission.Service
		mockRepo *mockGrantRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockGrantRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = permission.NewService(mockRepo, logger)
	})

	Describe("HasPermission", func() {
		Context("for the HR role", func() {
			It("is granted even with an empty grant set", func() {
				ok, err := svc.HasPermission(permission.RoleHR, permission.ManagePermissions)
				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeTrue())
			})

			It("is granted permissions no other role holds", func() {
				Expect(svc.Seed()).To(Succeed())

				ok, err := svc.HasPermission(permission.RoleHR, permission.ManageEmployees)
				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeTrue())
			})
		})

		Context("for non-HR roles", func() {
			It("equals membership in the grant set", func() {
				Expect(svc.Grant(permission.RoleManager, permission.ViewAnalytics)).To(Succeed())

				ok, err := svc.HasPermission(permission.RoleManager, permission.ViewAnalytics)
				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeTrue())

				ok, err = svc.HasPermission(permission.RoleManager, permission.ManagePermissions)
				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeFalse())
			})

			It("denies everything before any seeding", func() {
				ok, err := svc.HasPermission(permission.RoleEmployee, permission.ViewDashboard)
				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeFalse())
			})

			It("propagates repository failures", func() {
				mockRepo.getError = errors.New("connection refused")

				_, err := svc.HasPermission(permission.RoleEmployee, permission.ViewDashboard)
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Seed", func() {
		It("installs the full default matrix on an empty table", func() {
			Expect(svc.Seed()).To(Succeed())

			grants, err := svc.Matrix()
			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(len(permission.DefaultGrants())))
		})

		It("is idempotent across repeated calls", func() {
			Expect(svc.Seed()).To(Succeed())
			first, _ := svc.Matrix()

			Expect(svc.Seed()).To(Succeed())
			Expect(svc.Seed()).To(Succeed())
			after, err := svc.Matrix()

			Expect(err).ToNot(HaveOccurred())
			Expect(after).To(HaveLen(len(first)))
		})

		It("no-ops when any grant already exists", func() {
			Expect(svc.Grant(permission.RoleEmployee, permission.ViewTasks)).To(Succeed())

			Expect(svc.Seed()).To(Succeed())

			grants, _ := svc.Matrix()
			Expect(grants).To(HaveLen(1))
		})
	})

	Describe("Grant and Revoke", func() {
		It("grant is idempotent for duplicate pairs", func() {
			Expect(svc.Grant(permission.RoleIT, permission.ViewCalendar)).To(Succeed())
			Expect(svc.Grant(permission.RoleIT, permission.ViewCalendar)).To(Succeed())

			grants, _ := svc.Matrix()
			Expect(grants).To(HaveLen(1))
		})

		It("revoke removes the pair and denial follows", func() {
			Expect(svc.Grant(permission.RoleIT, permission.ViewCalendar)).To(Succeed())
			Expect(svc.Revoke(permission.RoleIT, permission.ViewCalendar)).To(Succeed())

			ok, err := svc.HasPermission(permission.RoleIT, permission.ViewCalendar)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("rejects any mutation targeting HR", func() {
			err := svc.Grant(permission.RoleHR, permission.ViewDashboard)
			Expect(err).To(MatchError(permission.ErrHRImmutable))

			err = svc.Revoke(permission.RoleHR, permission.ViewDashboard)
			Expect(err).To(MatchError(permission.ErrHRImmutable))
		})
	})

	Describe("Snapshot", func() {
		It("returns every known permission for HR", func() {
			perms, err := svc.Snapshot(permission.RoleHR)
			Expect(err).ToNot(HaveOccurred())
			Expect(perms).To(ConsistOf(permission.All))
		})

		It("returns only stored grants for other roles", func() {
			Expect(svc.Seed()).To(Succeed())

			perms, err := svc.Snapshot(permission.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())
			Expect(perms).To(ContainElement(permission.ViewTasks))
			Expect(perms).ToNot(ContainElement(permission.ManagePermissions))
		})
	})
})

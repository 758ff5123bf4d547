package policy_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/policy"
)

func TestPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Policy Suite")
}

type mockPolicyRepository struct {
	policies    map[int64]*policy.Policy
	acceptances []policy.Acceptance
	nextID      int64
}

func newMockPolicyRepository() *mockPolicyRepository {
	return &mockPolicyRepository{policies: map[int64]*policy.Policy{}}
}

func (m *mockPolicyRepository) GetAll() ([]policy.Policy, error) {
	var out []policy.Policy
	for _, p := range m.policies {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPolicyRepository) GetActiveWithAcceptance(userID int64) ([]policy.PolicyWithAcceptance, error) {
	var out []policy.PolicyWithAcceptance
	for _, p := range m.policies {
		if !p.IsActive {
			continue
		}
		row := policy.PolicyWithAcceptance{Policy: *p}
		for _, a := range m.acceptances {
			if a.PolicyID == p.ID && a.UserID == userID && a.PolicyVersion == p.Version {
				row.Accepted = true
				acceptedAt := a.AcceptedAt
				row.AcceptedAt = &acceptedAt
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockPolicyRepository) GetByID(id int64) (*policy.Policy, error) {
	p, ok := m.policies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPolicyRepository) Create(p *policy.Policy) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.policies[p.ID] = &cp
	return nil
}

func (m *mockPolicyRepository) Update(p *policy.Policy) error {
	if _, ok := m.policies[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	m.policies[p.ID] = &cp
	return nil
}

func (m *mockPolicyRepository) Delete(id int64) error {
	delete(m.policies, id)
	return nil
}

func (m *mockPolicyRepository) AppendAcceptance(a *policy.Acceptance) error {
	a.ID = int64(len(m.acceptances) + 1)
	m.acceptances = append(m.acceptances, *a)
	return nil
}

func (m *mockPolicyRepository) GetAcceptances(policyID int64) ([]policy.Acceptance, error) {
	var out []policy.Acceptance
	for _, a := range m.acceptances {
		if a.PolicyID == policyID {
			out = append(out, a)
		}
	}
	return out, nil
}

var _ = Describe("PolicyService", func() {
	var (
		svc      *policy.Service
		mockRepo *mockPolicyRepository
	)

	BeforeEach(func() {
		mockRepo = newMockPolicyRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = policy.NewService(mockRepo, events.NewEventBus(lg), lg)
	})

	create := func(title, content string) *policy.Policy {
		p, err := svc.Create(policy.CreatePolicyDTO{Title: title, Content: content})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("Create", func() {
		It("starts every policy at version 1 and active", func() {
			p := create("Code of Conduct", "Be excellent to each other.")
			Expect(p.Version).To(Equal(1))
			Expect(p.IsActive).To(BeTrue())
		})

		It("requires title and content", func() {
			_, err := svc.Create(policy.CreatePolicyDTO{Title: "Code of Conduct"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		It("bumps the version when content changes", func() {
			p := create("Code of Conduct", "Be excellent to each other.")

			content := "Be excellent to each other. Always."
			updated, err := svc.Update(p.ID, policy.UpdatePolicyDTO{Content: &content})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Version).To(Equal(2))
		})

		It("keeps the version when only the title changes", func() {
			p := create("Code of Conduct", "Be excellent to each other.")

			title := "Code of Conduct v2"
			updated, err := svc.Update(p.ID, policy.UpdatePolicyDTO{Title: &title})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Version).To(Equal(1))
		})

		It("keeps the version when the same content is resubmitted", func() {
			p := create("Code of Conduct", "Be excellent to each other.")

			content := "Be excellent to each other."
			updated, err := svc.Update(p.ID, policy.UpdatePolicyDTO{Content: &content})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Version).To(Equal(1))
		})

		It("returns not found for unknown policies", func() {
			title := "Anything"
			_, err := svc.Update(42, policy.UpdatePolicyDTO{Title: &title})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePolicyNotFound))
		})
	})

	Describe("Accept", func() {
		It("records the current version with network details", func() {
			p := create("Code of Conduct", "Be excellent to each other.")

			a, err := svc.Accept(7, p.ID, "10.0.0.5", "Mozilla/5.0")
			Expect(err).NotTo(HaveOccurred())
			Expect(a.PolicyVersion).To(Equal(1))
			Expect(a.IPAddress).To(Equal("10.0.0.5"))
			Expect(a.UserAgent).To(Equal("Mozilla/5.0"))
			Expect(a.AcceptedAt).NotTo(BeZero())
		})

		It("appends a second row after the policy content changes", func() {
			p := create("Code of Conduct", "Be excellent to each other.")
			_, err := svc.Accept(7, p.ID, "10.0.0.5", "Mozilla/5.0")
			Expect(err).NotTo(HaveOccurred())

			content := "Be excellent to each other. Always."
			_, err = svc.Update(p.ID, policy.UpdatePolicyDTO{Content: &content})
			Expect(err).NotTo(HaveOccurred())

			a, err := svc.Accept(7, p.ID, "10.0.0.5", "Mozilla/5.0")
			Expect(err).NotTo(HaveOccurred())
			Expect(a.PolicyVersion).To(Equal(2))

			acceptances, err := svc.Acceptances(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(acceptances).To(HaveLen(2))
		})

		It("returns not found for unknown policies", func() {
			_, err := svc.Accept(7, 42, "10.0.0.5", "Mozilla/5.0")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePolicyNotFound))
		})
	})

	Describe("ListForUser", func() {
		It("marks only current-version acceptances as accepted", func() {
			p := create("Code of Conduct", "Be excellent to each other.")
			_, err := svc.Accept(7, p.ID, "10.0.0.5", "Mozilla/5.0")
			Expect(err).NotTo(HaveOccurred())

			content := "Be excellent to each other. Always."
			_, err = svc.Update(p.ID, policy.UpdatePolicyDTO{Content: &content})
			Expect(err).NotTo(HaveOccurred())

			rows, err := svc.ListForUser(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Accepted).To(BeFalse())
		})

		It("excludes inactive policies", func() {
			p := create("Old Travel Policy", "Superseded.")
			inactive := false
			_, err := svc.Update(p.ID, policy.UpdatePolicyDTO{IsActive: &inactive})
			Expect(err).NotTo(HaveOccurred())

			rows, err := svc.ListForUser(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})
})

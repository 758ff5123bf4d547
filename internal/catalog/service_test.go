package catalog_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/catalog"
)

func TestCatalog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Suite")
}

type mockCatalogRepository struct {
	entries      map[catalog.Kind][]catalog.Entry
	userRefs     map[string]int64
	templateRefs map[string]int64
	nextID       int64
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{
		entries:      map[catalog.Kind][]catalog.Entry{},
		userRefs:     map[string]int64{},
		templateRefs: map[string]int64{},
		nextID:       1,
	}
}

func (m *mockCatalogRepository) GetAll(kind catalog.Kind) ([]catalog.Entry, error) {
	return m.entries[kind], nil
}

func (m *mockCatalogRepository) GetByID(kind catalog.Kind, id int64) (*catalog.Entry, error) {
	for _, e := range m.entries[kind] {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) GetByCode(kind catalog.Kind, code string) (*catalog.Entry, error) {
	for _, e := range m.entries[kind] {
		if e.Code == code {
			e := e
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) Create(kind catalog.Kind, entry *catalog.Entry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[kind] = append(m.entries[kind], *entry)
	return nil
}

func (m *mockCatalogRepository) Update(kind catalog.Kind, entry *catalog.Entry) error {
	for i, e := range m.entries[kind] {
		if e.ID == entry.ID {
			m.entries[kind][i] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCatalogRepository) Delete(kind catalog.Kind, id int64) error {
	var kept []catalog.Entry
	for _, e := range m.entries[kind] {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.entries[kind] = kept
	return nil
}

func (m *mockCatalogRepository) CountUserReferences(kind catalog.Kind, code string) (int64, error) {
	return m.userRefs[code], nil
}

func (m *mockCatalogRepository) CountTemplateReferences(code string) (int64, error) {
	return m.templateRefs[code], nil
}

var _ = Describe("CatalogService", func() {
	var (
		svc      *catalog.Service
		mockRepo *mockCatalogRepository
	)

	seed := func(kind catalog.Kind, code string, system bool) *catalog.Entry {
		entry := &catalog.Entry{Code: code, Label: code, IsActive: true, IsSystem: system}
		Expect(mockRepo.Create(kind, entry)).To(Succeed())
		return entry
	}

	BeforeEach(func() {
		mockRepo = newMockCatalogRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = catalog.NewService(mockRepo, lg)
	})

	Describe("Create", func() {
		It("accepts uppercase codes with underscores", func() {
			for _, code := range []string{"ENGINEERING", "IT_SUPPORT", "A"} {
				entry, err := svc.Create(catalog.KindDepartment, catalog.CreateEntryDTO{Code: code, Label: "Label"})
				Expect(err).NotTo(HaveOccurred())
				Expect(entry.Code).To(Equal(code))
				Expect(entry.IsSystem).To(BeFalse())
			}
		})

		It("rejects lowercase, hyphenated and numeric codes", func() {
			for _, code := range []string{"engineering", "IT-SUPPORT", "TEAM123", "", "IT SUPPORT"} {
				_, err := svc.Create(catalog.KindDepartment, catalog.CreateEntryDTO{Code: code, Label: "Label"})
				Expect(err).To(HaveOccurred(), "expected code %q to be rejected", code)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			}
		})

		It("rejects duplicate codes within a kind", func() {
			seed(catalog.KindRole, "CONTRACTOR", false)

			_, err := svc.Create(catalog.KindRole, catalog.CreateEntryDTO{Code: "CONTRACTOR", Label: "Contractor"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateCode))
		})

		It("never creates system entries through the API", func() {
			entry, err := svc.Create(catalog.KindRole, catalog.CreateEntryDTO{Code: "CONTRACTOR", Label: "Contractor"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.IsSystem).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("refuses to change a system entry's code", func() {
			entry := seed(catalog.KindRole, "HR", true)

			newCode := "PEOPLE_OPS"
			_, err := svc.Update(catalog.KindRole, entry.ID, catalog.UpdateEntryDTO{Code: &newCode})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSystemEntry))
		})

		It("allows relabeling a system entry", func() {
			entry := seed(catalog.KindRole, "HR", true)

			label := "People Team"
			updated, err := svc.Update(catalog.KindRole, entry.ID, catalog.UpdateEntryDTO{Label: &label})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Label).To(Equal("People Team"))
			Expect(updated.Code).To(Equal("HR"))
		})

		It("renames non-system entries when the new code is free", func() {
			entry := seed(catalog.KindDepartment, "SALES", false)

			newCode := "REVENUE"
			updated, err := svc.Update(catalog.KindDepartment, entry.ID, catalog.UpdateEntryDTO{Code: &newCode})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Code).To(Equal("REVENUE"))
		})
	})

	Describe("Delete", func() {
		It("refuses to delete system entries", func() {
			entry := seed(catalog.KindRole, "EMPLOYEE", true)

			err := svc.Delete(catalog.KindRole, entry.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSystemEntry))
		})

		It("blocks deletion while users reference the code", func() {
			entry := seed(catalog.KindDepartment, "SALES", false)
			mockRepo.userRefs["SALES"] = 3

			err := svc.Delete(catalog.KindDepartment, entry.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCatalogInUse))
			Expect(appErr.Message).To(ContainSubstring("3 user(s)"))
		})

		It("blocks job title deletion while templates reference the code", func() {
			entry := seed(catalog.KindJobTitle, "SOFTWARE_ENGINEER", false)
			mockRepo.templateRefs["SOFTWARE_ENGINEER"] = 2

			err := svc.Delete(catalog.KindJobTitle, entry.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCatalogInUse))
			Expect(appErr.Message).To(ContainSubstring("template"))
		})

		It("deletes unreferenced non-system entries", func() {
			entry := seed(catalog.KindDepartment, "SALES", false)

			Expect(svc.Delete(catalog.KindDepartment, entry.ID)).To(Succeed())
			_, err := svc.Get(catalog.KindDepartment, entry.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCatalogNotFound))
		})
	})

	Describe("List", func() {
		It("annotates entries with live usage counts", func() {
			seed(catalog.KindDepartment, "ENGINEERING", false)
			seed(catalog.KindDepartment, "SALES", false)
			mockRepo.userRefs["ENGINEERING"] = 5

			entries, err := svc.List(catalog.KindDepartment)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].UserCount).To(Equal(int64(5)))
			Expect(entries[1].UserCount).To(BeZero())
		})
	})

	Describe("Options", func() {
		seedJobTitle := func(code string, category *string, active bool) {
			entry := &catalog.Entry{Code: code, Label: code, Category: category, IsActive: active}
			Expect(mockRepo.Create(catalog.KindJobTitle, entry)).To(Succeed())
		}

		It("bundles the active entries of all three catalogs", func() {
			seed(catalog.KindRole, "HR", true)
			seed(catalog.KindRole, "IT", true)
			seed(catalog.KindDepartment, "ENGINEERING", false)
			eng := "ENGINEERING"
			seedJobTitle("BACKEND_ENGINEER", &eng, true)

			opts, err := svc.Options()
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.Roles).To(HaveLen(2))
			Expect(opts.Departments).To(HaveLen(1))
			Expect(opts.JobTitles).To(HaveKey("ENGINEERING"))
		})

		It("filters out inactive entries", func() {
			seed(catalog.KindRole, "HR", true)
			retired := seed(catalog.KindRole, "CONTRACTOR", false)
			retired.IsActive = false
			Expect(mockRepo.Update(catalog.KindRole, retired)).To(Succeed())
			seedJobTitle("FAX_OPERATOR", nil, false)

			opts, err := svc.Options()
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.Roles).To(HaveLen(1))
			Expect(opts.Roles[0].Code).To(Equal("HR"))
			Expect(opts.JobTitles).To(BeEmpty())
		})

		It("groups job titles by category with OTHER for uncategorized", func() {
			eng := "ENGINEERING"
			sales := "SALES"
			seedJobTitle("BACKEND_ENGINEER", &eng, true)
			seedJobTitle("FRONTEND_ENGINEER", &eng, true)
			seedJobTitle("ACCOUNT_EXECUTIVE", &sales, true)
			seedJobTitle("OFFICE_MANAGER", nil, true)

			opts, err := svc.Options()
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.JobTitles["ENGINEERING"]).To(HaveLen(2))
			Expect(opts.JobTitles["SALES"]).To(HaveLen(1))
			Expect(opts.JobTitles["OTHER"]).To(HaveLen(1))
			Expect(opts.JobTitles["OTHER"][0].Code).To(Equal("OFFICE_MANAGER"))
		})

		It("returns empty collections rather than nils when the catalogs are bare", func() {
			opts, err := svc.Options()
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.Roles).NotTo(BeNil())
			Expect(opts.Departments).NotTo(BeNil())
			Expect(opts.JobTitles).NotTo(BeNil())
		})
	})
})

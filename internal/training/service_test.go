package training_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/training"
)

func TestTraining(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Training Suite")
}

type mockTrainingRepository struct {
	courses     map[int64]*training.Course
	modules     map[int64]*training.Module
	quizzes     map[int64]*training.Quiz // keyed by module id
	questions   map[int64][]training.QuizQuestion
	enrollments []*training.Enrollment
	nextID      int64
}

func newMockTrainingRepository() *mockTrainingRepository {
	return &mockTrainingRepository{
		courses:   map[int64]*training.Course{},
		modules:   map[int64]*training.Module{},
		quizzes:   map[int64]*training.Quiz{},
		questions: map[int64][]training.QuizQuestion{},
	}
}

func (m *mockTrainingRepository) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockTrainingRepository) GetCoursesWithState(userID int64) ([]training.CourseWithState, error) {
	var out []training.CourseWithState
	for _, c := range m.courses {
		if !c.IsActive {
			continue
		}
		row := training.CourseWithState{Course: *c}
		for _, e := range m.enrollments {
			if e.CourseID == c.ID && e.UserID == userID {
				status := e.Status
				row.EnrollmentStatus = &status
				row.CertificateURL = e.CertificateURL
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockTrainingRepository) GetCourses() ([]training.Course, error) {
	var out []training.Course
	for _, c := range m.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockTrainingRepository) GetCourseByID(id int64) (*training.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockTrainingRepository) CreateCourse(c *training.Course) error {
	c.ID = m.id()
	cp := *c
	m.courses[c.ID] = &cp
	return nil
}

func (m *mockTrainingRepository) UpdateCourse(c *training.Course) error {
	cp := *c
	m.courses[c.ID] = &cp
	return nil
}

func (m *mockTrainingRepository) DeleteCourse(id int64) error {
	delete(m.courses, id)
	return nil
}

func (m *mockTrainingRepository) GetModules(courseID int64) ([]training.Module, error) {
	var out []training.Module
	for _, mod := range m.modules {
		if mod.CourseID == courseID {
			out = append(out, *mod)
		}
	}
	return out, nil
}

func (m *mockTrainingRepository) GetModuleByID(id int64) (*training.Module, error) {
	mod, ok := m.modules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *mod
	return &cp, nil
}

func (m *mockTrainingRepository) CreateModule(mod *training.Module) error {
	mod.ID = m.id()
	cp := *mod
	m.modules[mod.ID] = &cp
	return nil
}

func (m *mockTrainingRepository) UpdateModule(mod *training.Module) error {
	cp := *mod
	m.modules[mod.ID] = &cp
	return nil
}

func (m *mockTrainingRepository) DeleteModule(id int64) error {
	delete(m.modules, id)
	return nil
}

func (m *mockTrainingRepository) GetQuizByModuleID(moduleID int64) (*training.Quiz, error) {
	q, ok := m.quizzes[moduleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *mockTrainingRepository) GetQuizQuestions(quizID int64) ([]training.QuizQuestion, error) {
	for _, q := range m.quizzes {
		if q.ID == quizID {
			return m.questions[q.ID], nil
		}
	}
	return nil, nil
}

func (m *mockTrainingRepository) ReplaceQuiz(moduleID int64, quiz *training.Quiz, questions []training.QuizQuestion) error {
	if old, ok := m.quizzes[moduleID]; ok {
		delete(m.questions, old.ID)
	}
	quiz.ID = m.id()
	cp := *quiz
	m.quizzes[moduleID] = &cp
	for i := range questions {
		questions[i].ID = m.id()
		questions[i].QuizID = quiz.ID
	}
	m.questions[quiz.ID] = questions
	return nil
}

func (m *mockTrainingRepository) DeleteQuiz(moduleID int64) error {
	if old, ok := m.quizzes[moduleID]; ok {
		delete(m.questions, old.ID)
		delete(m.quizzes, moduleID)
	}
	return nil
}

func (m *mockTrainingRepository) GetEnrollment(courseID, userID int64) (*training.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepository) CreateEnrollment(e *training.Enrollment) error {
	e.ID = m.id()
	cp := *e
	m.enrollments = append(m.enrollments, &cp)
	return nil
}

func (m *mockTrainingRepository) UpdateEnrollment(e *training.Enrollment) error {
	for i, existing := range m.enrollments {
		if existing.ID == e.ID {
			cp := *e
			m.enrollments[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ = Describe("TrainingService", func() {
	var (
		svc      *training.Service
		mockRepo *mockTrainingRepository
	)

	BeforeEach(func() {
		mockRepo = newMockTrainingRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = training.NewService(mockRepo, lg)
	})

	createCourse := func(title string) *training.Course {
		c, err := svc.CreateCourse(training.CreateCourseDTO{Title: title, DurationMinutes: 60})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	createModule := func(courseID int64, title string) *training.Module {
		m, err := svc.CreateModule(courseID, training.CreateModuleDTO{Title: title})
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	quizDTO := func(questions ...training.QuizQuestionDTO) training.SetQuizDTO {
		return training.SetQuizDTO{Title: "Checkpoint", PassingScore: 80, Questions: questions}
	}

	Describe("SetQuiz", func() {
		var moduleID int64

		BeforeEach(func() {
			course := createCourse("Security Basics")
			moduleID = createModule(course.ID, "Phishing").ID
		})

		It("creates a quiz with JSON-encoded options", func() {
			view, err := svc.SetQuiz(moduleID, quizDTO(
				training.QuizQuestionDTO{Question: "Spot the phish?", Options: []string{"Link A", "Link B"}, CorrectIndex: 1},
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Quiz.PassingScore).To(Equal(80))
			Expect(view.Questions).To(HaveLen(1))
			Expect(view.Questions[0].Options).To(MatchJSON(`["Link A","Link B"]`))
			Expect(view.Questions[0].SortOrder).To(Equal(0))
		})

		It("replaces the whole question set on resubmission", func() {
			_, err := svc.SetQuiz(moduleID, quizDTO(
				training.QuizQuestionDTO{Question: "Old one?", Options: []string{"Yes", "No"}, CorrectIndex: 0},
				training.QuizQuestionDTO{Question: "Old two?", Options: []string{"Yes", "No"}, CorrectIndex: 0},
			))
			Expect(err).NotTo(HaveOccurred())

			view, err := svc.SetQuiz(moduleID, quizDTO(
				training.QuizQuestionDTO{Question: "New one?", Options: []string{"Yes", "No"}, CorrectIndex: 1},
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Questions).To(HaveLen(1))
			Expect(view.Questions[0].Question).To(Equal("New one?"))
		})

		It("defaults an out-of-range passing score to 70", func() {
			dto := quizDTO(training.QuizQuestionDTO{Question: "Q?", Options: []string{"A", "B"}, CorrectIndex: 0})
			dto.PassingScore = 150
			view, err := svc.SetQuiz(moduleID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Quiz.PassingScore).To(Equal(70))
		})

		It("rejects a correct_index outside the options", func() {
			_, err := svc.SetQuiz(moduleID, quizDTO(
				training.QuizQuestionDTO{Question: "Q?", Options: []string{"A", "B"}, CorrectIndex: 2},
			))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects an empty question set", func() {
			_, err := svc.SetQuiz(moduleID, quizDTO())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("returns not found for unknown modules", func() {
			_, err := svc.SetQuiz(99, quizDTO(
				training.QuizQuestionDTO{Question: "Q?", Options: []string{"A", "B"}, CorrectIndex: 0},
			))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("Enroll", func() {
		It("creates an enrollment in the ENROLLED state", func() {
			course := createCourse("Security Basics")

			e, err := svc.Enroll(7, course.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(training.EnrollmentEnrolled))
			Expect(e.EnrolledAt).NotTo(BeZero())
		})

		It("rejects a second enrollment into the same course", func() {
			course := createCourse("Security Basics")
			_, err := svc.Enroll(7, course.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Enroll(7, course.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("returns not found for unknown courses", func() {
			_, err := svc.Enroll(7, 99)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCourseNotFound))
		})
	})

	Describe("Complete", func() {
		It("issues a certificate and stamps the completion time", func() {
			course := createCourse("Security Basics")
			_, err := svc.Enroll(7, course.ID)
			Expect(err).NotTo(HaveOccurred())

			e, err := svc.Complete(7, course.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(training.EnrollmentCompleted))
			Expect(e.CompletedAt).NotTo(BeNil())
			Expect(e.CertificateURL).NotTo(BeNil())
			Expect(*e.CertificateURL).To(HavePrefix("https://certificates.onboarding.local/"))
			Expect(*e.CertificateURL).To(HaveSuffix(".pdf"))
		})

		It("is idempotent and keeps the original certificate", func() {
			course := createCourse("Security Basics")
			_, err := svc.Enroll(7, course.ID)
			Expect(err).NotTo(HaveOccurred())

			first, err := svc.Complete(7, course.ID)
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.Complete(7, course.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*second.CertificateURL).To(Equal(*first.CertificateURL))
			Expect(second.CompletedAt).To(Equal(first.CompletedAt))
		})

		It("fails when the user never enrolled", func() {
			course := createCourse("Security Basics")

			_, err := svc.Complete(7, course.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("ListForUser", func() {
		It("annotates courses with the caller's enrollment state", func() {
			course := createCourse("Security Basics")
			createCourse("Company Values")
			_, err := svc.Enroll(7, course.ID)
			Expect(err).NotTo(HaveOccurred())

			rows, err := svc.ListForUser(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			enrolled := 0
			for _, row := range rows {
				if row.EnrollmentStatus != nil {
					enrolled++
					Expect(*row.EnrollmentStatus).To(Equal(training.EnrollmentEnrolled))
				}
			}
			Expect(enrolled).To(Equal(1))
		})
	})
})

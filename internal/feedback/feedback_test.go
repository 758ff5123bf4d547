package feedback_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/feedback"
	"github.com/frahmantamala/onboarding-management/internal/permission"
)

func TestFeedback(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Feedback Suite")
}

type mockFeedbackRepository struct {
	items       []feedback.Feedback
	createError error
	nextID      int64
}

func (m *mockFeedbackRepository) GetAll() ([]feedback.Feedback, error) {
	return m.items, nil
}

func (m *mockFeedbackRepository) GetByUserID(userID int64) ([]feedback.Feedback, error) {
	var out []feedback.Feedback
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFeedbackRepository) Create(f *feedback.Feedback) error {
	if m.createError != nil {
		return m.createError
	}
	m.nextID++
	f.ID = m.nextID
	m.items = append(m.items, *f)
	return nil
}

var _ = Describe("Analyze", func() {
	It("scores plain text as neutral", func() {
		sentiment, score := feedback.Analyze("The laptop arrived on day one.")
		Expect(sentiment).To(Equal(feedback.SentimentNeutral))
		Expect(score).To(Equal(50))
	})

	It("adds five points per positive keyword", func() {
		sentiment, score := feedback.Analyze("My buddy was helpful and the wiki is clear.")
		Expect(score).To(Equal(60))
		Expect(sentiment).To(Equal(feedback.SentimentNeutral))
	})

	It("flags strongly positive messages", func() {
		sentiment, score := feedback.Analyze("Great first week, everyone was helpful, supportive and welcoming.")
		Expect(score).To(Equal(70))
		Expect(sentiment).To(Equal(feedback.SentimentPositive))
	})

	It("flags strongly negative messages", func() {
		sentiment, score := feedback.Analyze("Confusing schedule, slow IT setup and a frustrating, unclear wiki.")
		Expect(score).To(Equal(30))
		Expect(sentiment).To(Equal(feedback.SentimentNegative))
	})

	It("matches keywords case-insensitively", func() {
		_, score := feedback.Analyze("GREAT onboarding, LOVE the team.")
		Expect(score).To(Equal(60))
	})

	It("counts opposing keywords against each other", func() {
		sentiment, score := feedback.Analyze("Great buddy but a confusing badge process.")
		Expect(score).To(Equal(50))
		Expect(sentiment).To(Equal(feedback.SentimentNeutral))
	})

	It("clamps the score to the 0..100 range", func() {
		_, score := feedback.Analyze("great good excellent helpful love smooth easy clear amazing supportive welcoming organized")
		Expect(score).To(Equal(100))

		_, score = feedback.Analyze("bad poor confusing slow frustrating difficult unclear overwhelming problem stressful broken lost")
		Expect(score).To(Equal(0))
	})
})

var _ = Describe("FeedbackService", func() {
	var (
		svc      *feedback.Service
		mockRepo *mockFeedbackRepository
	)

	BeforeEach(func() {
		mockRepo = &mockFeedbackRepository{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = feedback.NewService(mockRepo, events.NewEventBus(lg), lg)
	})

	Describe("Create", func() {
		It("stores the computed sentiment alongside the message", func() {
			f, err := svc.Create(7, feedback.CreateFeedbackDTO{
				Message: "Great first week, everyone was helpful, supportive and welcoming.",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(f.ID).To(Equal(int64(1)))
			Expect(f.UserID).To(Equal(int64(7)))
			Expect(f.Sentiment).To(Equal(feedback.SentimentPositive))
			Expect(f.Score).To(Equal(70))
		})

		It("rejects empty messages", func() {
			_, err := svc.Create(7, feedback.CreateFeedbackDTO{Message: ""})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("wraps repository failures", func() {
			mockRepo.createError = errors.New("connection reset")
			_, err := svc.Create(7, feedback.CreateFeedbackDTO{Message: "Fine so far."})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})

		It("rejects messages over the length limit", func() {
			_, err := svc.Create(7, feedback.CreateFeedbackDTO{Message: strings.Repeat("a", 4001)})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, userID := range []int64{7, 7, 9} {
				_, err := svc.Create(userID, feedback.CreateFeedbackDTO{Message: "Fine so far."})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns everything to analytics viewers", func() {
			actor := &internal.SessionUser{ID: 1, Role: permission.RoleHR, Permissions: []string{permission.ViewAnalytics}}
			items, err := svc.List(actor)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(3))
		})

		It("returns only the caller's own submissions otherwise", func() {
			actor := &internal.SessionUser{ID: 7, Role: permission.RoleEmployee}
			items, err := svc.List(actor)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			for _, f := range items {
				Expect(f.UserID).To(Equal(int64(7)))
			}
		})
	})
})

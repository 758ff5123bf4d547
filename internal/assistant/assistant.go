package assistant

import (
	"log/slog"
	"strings"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
)

// Service answers onboarding questions with a keyword-matched canned reply.
// It stands in for a real model integration behind the same API shape.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger.With("component", "assistant_service")}
}

type replyRule struct {
	keywords []string
	answer   string
}

var rules = []replyRule{
	{
		keywords: []string{"task", "onboarding", "checklist"},
		answer:   "You can find all your onboarding tasks under My Onboarding. Tasks show their due dates; completing one updates your progress automatically.",
	},
	{
		keywords: []string{"policy", "policies", "handbook"},
		answer:   "Company policies are listed in the Policies section. Open a policy to read it and record your acceptance.",
	},
	{
		keywords: []string{"training", "course", "quiz"},
		answer:   "Browse available trainings in the Trainings section. Enroll in a course to start; mandatory courses are marked.",
	},
	{
		keywords: []string{"document", "upload", "contract"},
		answer:   "Pending paperwork is in the Documents section. Upload a file against each pending document to submit it.",
	},
	{
		keywords: []string{"calendar", "event", "meeting", "schedule"},
		answer:   "Your onboarding schedule lives in the Calendar section. You will get a reminder before each event starts.",
	},
	{
		keywords: []string{"buddy", "manager", "contact", "help"},
		answer:   "Your manager and onboarding buddy are shown on your profile. Reach out to them for anything this assistant cannot answer.",
	},
}

const fallbackAnswer = "I can help with questions about your tasks, policies, trainings, documents and calendar. Could you rephrase your question?"

type ChatDTO struct {
	Message string `json:"message"`
}

func (d *ChatDTO) Validate() error {
	if strings.TrimSpace(d.Message) == "" {
		return internal_errors.NewValidationFieldError("message", "message is required", internal_errors.ErrCodeMissingField)
	}
	return nil
}

type ChatReply struct {
	Reply string `json:"reply"`
}

func (s *Service) Chat(userID int64, dto ChatDTO) (*ChatReply, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(dto.Message)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				s.logger.Info("assistant reply matched", "user_id", userID, "keyword", kw)
				return &ChatReply{Reply: rule.answer}, nil
			}
		}
	}

	s.logger.Info("assistant fallback reply", "user_id", userID)
	return &ChatReply{Reply: fallbackAnswer}, nil
}

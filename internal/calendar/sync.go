package calendar

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ProviderSyncer pushes an event to an external calendar and returns the
// provider's id for it.
type ProviderSyncer interface {
	Provider() string
	PushEvent(ev *Event) (string, error)
}

// MockSyncer stands in for the real provider integrations. It fabricates
// stable-looking external ids without any network traffic.
type MockSyncer struct {
	provider string
	logger   *slog.Logger
}

func NewMockSyncer(provider string, logger *slog.Logger) *MockSyncer {
	return &MockSyncer{
		provider: provider,
		logger:   logger.With("component", "calendar_sync", "provider", provider),
	}
}

func (m *MockSyncer) Provider() string {
	return m.provider
}

func (m *MockSyncer) PushEvent(ev *Event) (string, error) {
	externalID := fmt.Sprintf("%s_%s", m.provider, uuid.NewString())
	m.logger.Info("event pushed to provider",
		"event_id", ev.ID, "external_id", externalID)
	return externalID, nil
}

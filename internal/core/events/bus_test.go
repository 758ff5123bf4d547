package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/onboarding-management/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(lg)
	})

	Describe("Publish", func() {
		It("dispatches to every subscriber of the event type", func() {
			var mu sync.Mutex
			received := map[string]int{}
			handler := func(name string) events.Handler {
				return func(_ context.Context, _ events.Event) error {
					mu.Lock()
					received[name]++
					mu.Unlock()
					return nil
				}
			}
			bus.Subscribe(events.EventTypeEmployeeCreated, handler("first"))
			bus.Subscribe(events.EventTypeEmployeeCreated, handler("second"))
			bus.Subscribe(events.EventTypeOnboardingCompleted, handler("other"))

			err := bus.Publish(context.Background(), events.NewEmployeeCreatedEvent(1, "Jane Doe", "jane@onboarding.local", nil, nil))
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return received["first"] + received["second"]
			}).Should(Equal(2))
			Consistently(func() int {
				mu.Lock()
				defer mu.Unlock()
				return received["other"]
			}, 50*time.Millisecond).Should(BeZero())
		})

		It("swallows handler errors", func() {
			bus.Subscribe(events.EventTypeEmployeeCreated, func(_ context.Context, _ events.Event) error {
				return errors.New("boom")
			})
			err := bus.Publish(context.Background(), events.NewEmployeeCreatedEvent(1, "Jane Doe", "jane@onboarding.local", nil, nil))
			Expect(err).NotTo(HaveOccurred())
		})

		It("is a no-op without subscribers", func() {
			err := bus.Publish(context.Background(), events.NewEmployeeCreatedEvent(1, "Jane Doe", "jane@onboarding.local", nil, nil))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("PublishSync", func() {
		It("runs handlers inline and surfaces the first failure", func() {
			order := []string{}
			bus.Subscribe(events.EventTypeOnboardingCompleted, func(_ context.Context, _ events.Event) error {
				order = append(order, "first")
				return errors.New("boom")
			})
			bus.Subscribe(events.EventTypeOnboardingCompleted, func(_ context.Context, _ events.Event) error {
				order = append(order, "second")
				return nil
			})

			err := bus.PublishSync(context.Background(), events.NewOnboardingCompletedEvent(1, 7, "Jane Doe", nil))
			Expect(err).To(HaveOccurred())
			Expect(order).To(Equal([]string{"first"}))
		})
	})

	Describe("event envelopes", func() {
		It("stamps each event with an id and timestamp", func() {
			e := events.NewPolicyAcceptedEvent(3, "Code of Conduct", 2, 7)
			Expect(e.EventType()).To(Equal(events.EventTypePolicyAccepted))
			Expect(e.EventID()).NotTo(BeEmpty())
			Expect(e.OccurredAt()).To(BeTemporally("~", time.Now(), time.Second))
		})
	})
})

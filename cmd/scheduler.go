package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/onboarding-management/internal/calendar"
	calendarRepo "github.com/frahmantamala/onboarding-management/internal/calendar/postgres"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/notification"
	notificationRepo "github.com/frahmantamala/onboarding-management/internal/notification/postgres"
	"github.com/frahmantamala/onboarding-management/internal/user"
	userRepo "github.com/frahmantamala/onboarding-management/internal/user/postgres"
	"github.com/frahmantamala/onboarding-management/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// schedulerCmd runs the reminder scan on a cron schedule, as a standalone
// process so the HTTP server is not the only thing firing reminders.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the calendar reminder scheduler",
	Long:  `Periodically scan upcoming calendar events and publish reminder notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			return fmt.Errorf("failed to initialize orm: %w", err)
		}

		bus := events.NewEventBus(lg)
		notificationSvc := notification.NewService(notificationRepo.NewRepository(gormDB), lg)
		notification.NewSubscriber(notificationSvc, lg).Register(bus)

		userSvc := user.NewService(userRepo.NewRepository(gormDB), bus, cfg.Security.BCryptCost, lg)
		calendarSvc := calendar.NewService(calendarRepo.NewRepository(gormDB), userSvc, bus,
			calendar.NewMockSyncer("google", lg), calendar.NewMockSyncer("outlook", lg), lg)

		c := cron.New()
		_, err = c.AddFunc(cfg.Scheduler.ReminderCron, func() {
			result, err := calendarSvc.ProcessReminders(context.Background(), time.Now())
			if err != nil {
				lg.Error("reminder scan failed", "error", err)
				return
			}
			lg.Info("reminder scan finished", "processed", result.Processed, "sent", result.Sent)
		})
		if err != nil {
			return fmt.Errorf("invalid reminder cron expression %q: %w", cfg.Scheduler.ReminderCron, err)
		}

		lg.Info("starting reminder scheduler", "cron", cfg.Scheduler.ReminderCron)
		c.Start()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		lg.Info("received signal, stopping scheduler", "signal", sig.String())

		ctx := c.Stop()
		<-ctx.Done()
		return nil
	},
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/assistant"
	"github.com/frahmantamala/onboarding-management/internal/auth"
	authRepo "github.com/frahmantamala/onboarding-management/internal/auth/postgres"
	"github.com/frahmantamala/onboarding-management/internal/calendar"
	calendarRepo "github.com/frahmantamala/onboarding-management/internal/calendar/postgres"
	"github.com/frahmantamala/onboarding-management/internal/catalog"
	catalogRepo "github.com/frahmantamala/onboarding-management/internal/catalog/postgres"
	"github.com/frahmantamala/onboarding-management/internal/core/events"
	"github.com/frahmantamala/onboarding-management/internal/document"
	documentRepo "github.com/frahmantamala/onboarding-management/internal/document/postgres"
	"github.com/frahmantamala/onboarding-management/internal/feedback"
	feedbackRepo "github.com/frahmantamala/onboarding-management/internal/feedback/postgres"
	"github.com/frahmantamala/onboarding-management/internal/library"
	libraryRepo "github.com/frahmantamala/onboarding-management/internal/library/postgres"
	"github.com/frahmantamala/onboarding-management/internal/notification"
	notificationRepo "github.com/frahmantamala/onboarding-management/internal/notification/postgres"
	"github.com/frahmantamala/onboarding-management/internal/onboarding"
	onboardingRepo "github.com/frahmantamala/onboarding-management/internal/onboarding/postgres"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	permissionRepo "github.com/frahmantamala/onboarding-management/internal/permission/postgres"
	"github.com/frahmantamala/onboarding-management/internal/policy"
	policyRepo "github.com/frahmantamala/onboarding-management/internal/policy/postgres"
	"github.com/frahmantamala/onboarding-management/internal/training"
	trainingRepo "github.com/frahmantamala/onboarding-management/internal/training/postgres"
	"github.com/frahmantamala/onboarding-management/internal/transport"
	"github.com/frahmantamala/onboarding-management/internal/transport/rest"
	"github.com/frahmantamala/onboarding-management/internal/user"
	userRepo "github.com/frahmantamala/onboarding-management/internal/user/postgres"
	"github.com/frahmantamala/onboarding-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	handlers, rbac, err := buildHandlers(cfg, gormDB, lg)
	if err != nil {
		return nil, err
	}
	rest.RegisterAllRoutes(router, db.DB, handlers, rbac, lg)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// buildHandlers constructs the full service graph. Cross-feature links that
// would otherwise form import cycles are attached through setters after both
// sides exist.
func buildHandlers(cfg *internal.Config, gormDB *gorm.DB, lg *slog.Logger) (rest.Handlers, *permission.RBAC, error) {
	bus := events.NewEventBus(lg)
	baseHandler := transport.NewBaseHandler(lg)

	permissionSvc := permission.NewService(permissionRepo.NewPermissionRepository(gormDB), lg)
	rbac := permission.NewRBAC(permissionSvc, lg)

	privateKey, err := cfg.Security.GetPrivateKey()
	if err != nil {
		return rest.Handlers{}, nil, fmt.Errorf("failed to parse JWT private key: %w", err)
	}
	publicKey, err := cfg.Security.GetPublicKey()
	if err != nil {
		return rest.Handlers{}, nil, fmt.Errorf("failed to parse JWT public key: %w", err)
	}
	tokenGen := auth.NewJWTTokenGenerator(privateKey, publicKey,
		cfg.Security.AccessTokenDuration, cfg.Security.RefreshTokenDuration)
	authSvc := auth.NewService(authRepo.NewRepository(gormDB), tokenGen, permissionSvc, lg)

	catalogSvc := catalog.NewService(catalogRepo.NewRepository(gormDB), lg)
	userSvc := user.NewService(userRepo.NewRepository(gormDB), bus, cfg.Security.BCryptCost, lg)
	onboardingSvc := onboarding.NewService(onboardingRepo.NewRepository(gormDB), userSvc, bus, lg)
	calendarSvc := calendar.NewService(calendarRepo.NewRepository(gormDB), userSvc, bus,
		calendar.NewMockSyncer("google", lg), calendar.NewMockSyncer("outlook", lg), lg)

	userSvc.SetAssigner(onboardingSvc)
	onboardingSvc.SetCalendar(calendarSvc)

	documentSvc := document.NewService(documentRepo.NewRepository(gormDB), lg)
	policySvc := policy.NewService(policyRepo.NewRepository(gormDB), bus, lg)
	trainingSvc := training.NewService(trainingRepo.NewRepository(gormDB), lg)
	librarySvc := library.NewService(libraryRepo.NewRepository(gormDB), lg)
	notificationSvc := notification.NewService(notificationRepo.NewRepository(gormDB), lg)
	feedbackSvc := feedback.NewService(feedbackRepo.NewRepository(gormDB), bus, lg)
	assistantSvc := assistant.NewService(lg)

	notification.NewSubscriber(notificationSvc, lg).Register(bus)

	return rest.Handlers{
		Auth:         auth.NewHandler(baseHandler, authSvc),
		User:         user.NewHandler(lg, userSvc, onboardingSvc),
		Catalog:      catalog.NewHandler(lg, catalogSvc),
		Permission:   permission.NewHandler(baseHandler, permissionSvc),
		Onboarding:   onboarding.NewHandler(lg, onboardingSvc),
		Document:     document.NewHandler(lg, documentSvc),
		Calendar:     calendar.NewHandler(lg, calendarSvc),
		Policy:       policy.NewHandler(lg, policySvc),
		Training:     training.NewHandler(lg, trainingSvc),
		Library:      library.NewHandler(lg, librarySvc),
		Notification: notification.NewHandler(lg, notificationSvc),
		Feedback:     feedback.NewHandler(lg, feedbackSvc),
		Assistant:    assistant.NewHandler(lg, assistantSvc),
	}, rbac, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx connection pool so the
// whole process shares one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}

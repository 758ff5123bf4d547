package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/onboarding-management/internal/assistant"
	"github.com/frahmantamala/onboarding-management/internal/auth"
	"github.com/frahmantamala/onboarding-management/internal/calendar"
	"github.com/frahmantamala/onboarding-management/internal/catalog"
	"github.com/frahmantamala/onboarding-management/internal/document"
	"github.com/frahmantamala/onboarding-management/internal/feedback"
	"github.com/frahmantamala/onboarding-management/internal/library"
	"github.com/frahmantamala/onboarding-management/internal/notification"
	"github.com/frahmantamala/onboarding-management/internal/onboarding"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	"github.com/frahmantamala/onboarding-management/internal/policy"
	"github.com/frahmantamala/onboarding-management/internal/training"
	"github.com/frahmantamala/onboarding-management/internal/transport/middleware"
	"github.com/frahmantamala/onboarding-management/internal/transport/swagger"
	"github.com/frahmantamala/onboarding-management/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles every feature handler the router mounts. Keeping them in
// one struct avoids a register function with fifteen positional parameters.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Catalog      *catalog.Handler
	Permission   *permission.Handler
	Onboarding   *onboarding.Handler
	Document     *document.Handler
	Calendar     *calendar.Handler
	Policy       *policy.Handler
	Training     *training.Handler
	Library      *library.Handler
	Notification *notification.Handler
	Feedback     *feedback.Handler
	Assistant    *assistant.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *permission.RBAC, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid session.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)

			// Employee directory
			pr.Get("/managers", h.User.Managers)
			pr.Route("/users", func(ur chi.Router) {
				ur.Use(rbac.Require(permission.ManageEmployees))
				ur.Get("/", h.User.List)
				ur.Post("/", h.User.Create)
				ur.Get("/{id}", h.User.Get)
				ur.Patch("/{id}", h.User.Update)
				ur.Delete("/{id}", h.User.Delete)
				ur.Put("/{id}/template", h.User.AssignTemplate)
			})

			// Catalog dropdowns for any signed-in user
			pr.Get("/system-options", h.Catalog.Options)

			// System catalogs, role bound rather than permission bound
			pr.Route("/admin/system/{kind}", func(cr chi.Router) {
				cr.Use(rbac.RequireRole(permission.RoleHR))
				cr.Get("/", h.Catalog.List)
				cr.Post("/", h.Catalog.Create)
				cr.Patch("/{id}", h.Catalog.Update)
				cr.Delete("/{id}", h.Catalog.Delete)
			})

			pr.Route("/admin/permissions", func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ManagePermissions))
				ar.Get("/", h.Permission.GetMatrix)
				ar.Post("/", h.Permission.ToggleGrant)
			})

			// Onboarding templates
			pr.Route("/templates", func(tr chi.Router) {
				tr.Use(rbac.Require(permission.ManageTemplates))
				tr.Get("/", h.Onboarding.ListTemplates)
				tr.Post("/", h.Onboarding.CreateTemplate)
				tr.Get("/{id}", h.Onboarding.GetTemplate)
				tr.Patch("/{id}", h.Onboarding.UpdateTemplate)
				tr.Delete("/{id}", h.Onboarding.DeleteTemplate)
				tr.Get("/{id}/tasks", h.Onboarding.ListTemplateTasks)
				tr.Post("/{id}/tasks", h.Onboarding.CreateTemplateTask)
				tr.Patch("/tasks/{taskId}", h.Onboarding.UpdateTemplateTask)
				tr.Delete("/tasks/{taskId}", h.Onboarding.DeleteTemplateTask)
			})

			// Employee self-service onboarding
			pr.Get("/my-onboarding", h.Onboarding.MyOnboarding)
			pr.Patch("/my-onboarding/tasks/{taskId}", h.Onboarding.UpdateTaskStatus)

			// Role-scoped work queue for support staff
			pr.Get("/assigned-tasks", h.Onboarding.AssignedTasks)

			pr.Route("/admin/tasks", func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ManageEmployees))
				ar.Post("/", h.Onboarding.AdminCreateTask)
				ar.Patch("/{taskId}", h.Onboarding.UpdateTaskStatus)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ViewAnalytics))
				ar.Get("/admin/analytics", h.Onboarding.Analytics)
			})

			// Documents
			pr.Route("/documents", func(dr chi.Router) {
				dr.Get("/", h.Document.List)
				dr.Post("/", h.Document.Create)
				dr.Patch("/{id}/upload", h.Document.Upload)
				dr.Delete("/{id}", h.Document.Delete)
			})

			// Calendar
			pr.Route("/admin/event-templates", func(er chi.Router) {
				er.Use(rbac.Require(permission.ManageCalendar))
				er.Get("/", h.Calendar.ListTemplates)
				er.Post("/", h.Calendar.CreateTemplate)
				er.Patch("/{id}", h.Calendar.UpdateTemplate)
				er.Delete("/{id}", h.Calendar.DeleteTemplate)
				er.Post("/apply", h.Calendar.ApplyTemplates)
			})
			pr.With(rbac.Require(permission.ManageCalendar)).
				Post("/admin/calendar/recreate", h.Calendar.RecreateCalendar)
			pr.Route("/calendar/events", func(er chi.Router) {
				er.Get("/", h.Calendar.ListEvents)
				er.Post("/", h.Calendar.CreateEvent)
				er.Patch("/{id}", h.Calendar.UpdateEvent)
				er.Delete("/{id}", h.Calendar.DeleteEvent)
				er.Post("/{id}/sync-google", h.Calendar.SyncGoogle)
				er.Post("/{id}/sync-outlook", h.Calendar.SyncOutlook)
			})
			pr.Get("/cron/reminders", h.Calendar.RunReminders)

			// Policies
			pr.Get("/policies", h.Policy.List)
			pr.Get("/policies/{id}", h.Policy.Get)
			pr.Post("/policies/{id}/accept", h.Policy.Accept)
			pr.Route("/admin/policies", func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ManagePolicies))
				ar.Get("/", h.Policy.ListAll)
				ar.Post("/", h.Policy.Create)
				ar.Patch("/{id}", h.Policy.Update)
				ar.Delete("/{id}", h.Policy.Delete)
				ar.Get("/{id}/acceptances", h.Policy.Acceptances)
			})

			// Trainings
			pr.Get("/trainings", h.Training.ListCourses)
			pr.Get("/trainings/{id}", h.Training.GetCourse)
			pr.Post("/trainings/{id}/enroll", h.Training.Enroll)
			pr.Post("/trainings/{id}/complete", h.Training.Complete)
			pr.Route("/admin/trainings", func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ManageTrainings))
				ar.Get("/", h.Training.ListAllCourses)
				ar.Post("/", h.Training.CreateCourse)
				ar.Patch("/{id}", h.Training.UpdateCourse)
				ar.Delete("/{id}", h.Training.DeleteCourse)
				ar.Get("/{id}/modules", h.Training.ListModules)
				ar.Post("/{id}/modules", h.Training.CreateModule)
				ar.Patch("/modules/{moduleId}", h.Training.UpdateModule)
				ar.Delete("/modules/{moduleId}", h.Training.DeleteModule)
				ar.Get("/modules/{moduleId}/quiz", h.Training.GetQuiz)
				ar.Put("/modules/{moduleId}/quiz", h.Training.SetQuiz)
				ar.Delete("/modules/{moduleId}/quiz", h.Training.DeleteQuiz)
			})

			// Library
			pr.Get("/resources", h.Library.List)
			pr.Route("/admin/resources", func(ar chi.Router) {
				ar.Use(rbac.Require(permission.ManageLibrary))
				ar.Get("/", h.Library.ListAll)
				ar.Post("/", h.Library.Create)
				ar.Patch("/{id}", h.Library.Update)
				ar.Delete("/{id}", h.Library.Delete)
			})

			// Notifications
			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.List)
				nr.Get("/unread", h.Notification.UnreadCount)
				nr.Patch("/{id}/read", h.Notification.MarkRead)
				nr.Post("/read-all", h.Notification.MarkAllRead)
			})

			// Feedback
			pr.Get("/feedback", h.Feedback.List)
			pr.Post("/feedback", h.Feedback.Create)

			// AI assistant
			pr.Post("/ai/chat", h.Assistant.Chat)
		})
	})
}

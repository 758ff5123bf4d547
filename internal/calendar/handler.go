package calendar

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	ListTemplates() ([]EventTemplate, error)
	CreateTemplate(dto CreateEventTemplateDTO) (*EventTemplate, error)
	UpdateTemplate(id int64, dto UpdateEventTemplateDTO) (*EventTemplate, error)
	DeleteTemplate(id int64) error
	ApplyEventTemplates(ctx context.Context, userID int64) (int, error)
	RecreateCalendar(ctx context.Context, userID int64) (deleted, created int, err error)

	ListForUser(userID int64) ([]Event, error)
	Create(actor *internal.SessionUser, dto CreateEventDTO) (*Event, error)
	Update(actor *internal.SessionUser, id int64, dto UpdateEventDTO) (*Event, error)
	Delete(actor *internal.SessionUser, id int64) error
	Sync(actor *internal.SessionUser, id int64, provider string) (*Event, error)
	ProcessReminders(ctx context.Context, now time.Time) (*ReminderResult, error)
}

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

func (h *Handler) eventID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, templates)
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var dto CreateEventTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl, err := h.service.CreateTemplate(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.eventID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateEventTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl, err := h.service.UpdateTemplate(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tpl)
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.eventID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.DeleteTemplate(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ApplyTemplates(w http.ResponseWriter, r *http.Request) {
	var dto ApplyTemplatesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}
	created, err := h.service.ApplyEventTemplates(r.Context(), dto.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int{"created_events": created})
}

func (h *Handler) RecreateCalendar(w http.ResponseWriter, r *http.Request) {
	var dto ApplyTemplatesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}
	deleted, created, err := h.service.RecreateCalendar(r.Context(), dto.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int{
		"deleted_events": deleted,
		"created_events": created,
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	evs, err := h.service.ListForUser(u.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, evs)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ev, err := h.service.Create(u, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := h.eventID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ev, err := h.service.Update(u, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ev)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := h.eventID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.Delete(u, id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) SyncGoogle(w http.ResponseWriter, r *http.Request) {
	h.sync(w, r, "google")
}

func (h *Handler) SyncOutlook(w http.ResponseWriter, r *http.Request) {
	h.sync(w, r, "outlook")
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request, provider string) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := h.eventID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	ev, err := h.service.Sync(u, id, provider)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ev)
}

// RunReminders triggers the reminder scan. Exposed for the external cron
// caller as well as the in-process scheduler.
func (h *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ProcessReminders(r.Context(), time.Now())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

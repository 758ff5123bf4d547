package onboarding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	ListTemplates() ([]Template, error)
	GetTemplate(id int64) (*Template, error)
	CreateTemplate(dto CreateTemplateDTO) (*Template, error)
	UpdateTemplate(id int64, dto UpdateTemplateDTO) (*Template, error)
	DeleteTemplate(id int64) error
	ListTemplateTasks(templateID int64) ([]TemplateTask, error)
	CreateTemplateTask(templateID int64, dto CreateTemplateTaskDTO) (*TemplateTask, error)
	UpdateTemplateTask(taskID int64, dto UpdateTemplateTaskDTO) (*TemplateTask, error)
	DeleteTemplateTask(taskID int64) error

	MyOnboarding(userID int64) (*OnboardingView, error)
	AssignedTasks(actor *internal.SessionUser) ([]AssignedTask, error)
	UpdateTaskStatus(ctx context.Context, actor *internal.SessionUser, taskID int64, dto UpdateTaskStatusDTO) (*UserTask, error)
	AdminCreateTask(ctx context.Context, dto AdminCreateTaskDTO) (*UserTask, error)
	Analytics() (*AnalyticsReport, error)
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

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("invalid "+name, internal.ErrCodeValidationFailed)
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

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	tpl, err := h.service.GetTemplate(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tpl)
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var dto CreateTemplateDTO
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
	id, err := pathID(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateTemplateDTO
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
	id, err := pathID(r, "id")
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

func (h *Handler) ListTemplateTasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	tasks, err := h.service.ListTemplateTasks(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTemplateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto CreateTemplateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.CreateTemplateTask(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, task)
}

func (h *Handler) UpdateTemplateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateTemplateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.UpdateTemplateTask(taskID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) DeleteTemplateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.DeleteTemplateTask(taskID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) MyOnboarding(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.service.MyOnboarding(u.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) AssignedTasks(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tasks, err := h.service.AssignedTasks(u)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	taskID, err := pathID(r, "taskId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateTaskStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.UpdateTaskStatus(r.Context(), u, taskID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) AdminCreateTask(w http.ResponseWriter, r *http.Request) {
	var dto AdminCreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.AdminCreateTask(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, task)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Analytics()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, report)
}

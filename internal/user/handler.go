package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	List() ([]UserWithOnboarding, error)
	Get(id int64) (*User, error)
	Managers() ([]Manager, error)
	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error)
	Delete(id int64) error
}

// TemplateReassigner reapplies an onboarding template, returning the
// propagation diff.
type TemplateReassigner interface {
	ReassignTemplate(ctx context.Context, userID, templateID int64) (deleted, created int, err error)
}

type Handler struct {
	*transport.BaseHandler
	service    ServiceAPI
	reassigner TemplateReassigner
}

func NewHandler(logger *slog.Logger, service ServiceAPI, reassigner TemplateReassigner) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
		reassigner:  reassigner,
	}
}

func (h *Handler) idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal_errors.NewValidationError("invalid id", internal_errors.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	u, err := h.service.Get(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Managers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.service.Managers()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, managers)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.Create(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

// AssignTemplate replaces the user's onboarding with a fresh copy of the
// given template and reports how many tasks were deleted and created.
func (h *Handler) AssignTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto AssignTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	deleted, created, err := h.reassigner.ReassignTemplate(r.Context(), id, dto.TemplateID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int{
		"deleted_tasks": deleted,
		"created_tasks": created,
	})
}

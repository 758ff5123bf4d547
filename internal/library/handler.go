package library

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	ListActive() ([]Resource, error)
	ListAll() ([]Resource, error)
	Create(dto CreateResourceDTO) (*Resource, error)
	Update(id int64, dto UpdateResourceDTO) (*Resource, error)
	Delete(id int64) error
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

func (h *Handler) resourceID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.ListActive()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resources)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.ListAll()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resources)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.resourceID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.service.Update(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.resourceID(r)
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

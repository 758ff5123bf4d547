package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal_errors "github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	List(kind Kind) ([]EntryWithUsage, error)
	Get(kind Kind, id int64) (*Entry, error)
	Create(kind Kind, dto CreateEntryDTO) (*Entry, error)
	Update(kind Kind, id int64, dto UpdateEntryDTO) (*Entry, error)
	Delete(kind Kind, id int64) error
	Options() (*SystemOptions, error)
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

func (h *Handler) kindFromRequest(r *http.Request) (Kind, error) {
	kind := Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		return "", internal_errors.NewNotFoundError("unknown catalog", internal_errors.ErrCodeCatalogNotFound)
	}
	return kind, nil
}

func (h *Handler) idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal_errors.NewValidationError("invalid id", internal_errors.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kindFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	entries, err := h.service.List(kind)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, opts)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kindFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto CreateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Create(kind, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kindFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto UpdateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Update(kind, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kindFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	id, err := h.idFromRequest(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(kind, id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

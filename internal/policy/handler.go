package policy

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	ListForUser(userID int64) ([]PolicyWithAcceptance, error)
	ListAll() ([]Policy, error)
	Get(id int64) (*Policy, error)
	Create(dto CreatePolicyDTO) (*Policy, error)
	Update(id int64, dto UpdatePolicyDTO) (*Policy, error)
	Delete(id int64) error
	Accept(userID, policyID int64, ipAddress, userAgent string) (*Acceptance, error)
	Acceptances(policyID int64) ([]Acceptance, error)
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

func (h *Handler) policyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	policies, err := h.service.ListForUser(u.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.ListAll()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.policyID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	p, err := h.service.Get(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePolicyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.policyID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdatePolicyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.service.Update(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.policyID(r)
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

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := h.policyID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		if host, _, splitErr := net.SplitHostPort(r.RemoteAddr); splitErr == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}

	a, err := h.service.Accept(u.ID, id, ip, r.UserAgent())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Acceptances(w http.ResponseWriter, r *http.Request) {
	id, err := h.policyID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	acceptances, err := h.service.Acceptances(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, acceptances)
}

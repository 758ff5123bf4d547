package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	Chat(userID int64, dto ChatDTO) (*ChatReply, error)
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

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var dto ChatDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reply, err := h.service.Chat(u.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, reply)
}

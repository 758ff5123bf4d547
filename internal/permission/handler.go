package permission

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	Matrix() ([]RolePermission, error)
	Grant(role, permission string) error
	Revoke(role, permission string) error
	Snapshot(role string) ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type toggleGrantDTO struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
	Enabled    bool   `json:"enabled"`
}

func (dto toggleGrantDTO) Validate() error {
	if dto.Role == "" {
		return internal.NewValidationFieldError("role", "role is required", internal.ErrCodeMissingField)
	}
	if dto.Permission == "" {
		return internal.NewValidationFieldError("permission", "permission is required", internal.ErrCodeMissingField)
	}
	return nil
}

// GetMatrix returns every stored grant plus the known permission keys so the
// admin screen can render the full grid.
func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	grants, err := h.Service.Matrix()
	if err != nil {
		h.Logger.Error("GetMatrix: failed to load grants", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"permissions": All,
		"labels":      Labels,
		"grants":      grants,
	})
}

// ToggleGrant creates or removes a single (role, permission) pair.
func (h *Handler) ToggleGrant(w http.ResponseWriter, r *http.Request) {
	var dto toggleGrantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	var err error
	if dto.Enabled {
		err = h.Service.Grant(dto.Role, dto.Permission)
	} else {
		err = h.Service.Revoke(dto.Role, dto.Permission)
	}

	if err != nil {
		h.Logger.Error("ToggleGrant failed", "error", err, "role", dto.Role, "permission", dto.Permission)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package permission

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/onboarding-management/internal"
)

// Authorizer resolves whether a role holds a permission. Satisfied by Service.
type Authorizer interface {
	HasPermission(role, permission string) (bool, error)
}

// RBAC wraps route handlers with grant-set checks. The session user must
// already be in the request context (auth middleware runs first).
type RBAC struct {
	authorizer Authorizer
	logger     *slog.Logger
}

func NewRBAC(authorizer Authorizer, logger *slog.Logger) *RBAC {
	return &RBAC{
		authorizer: authorizer,
		logger:     logger,
	}
}

func (ra *RBAC) Check(next http.HandlerFunc, permission string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok || user == nil {
			ra.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		hasAccess, err := ra.authorizer.HasPermission(user.Role, permission)
		if err != nil {
			ra.logger.ErrorContext(r.Context(), "authorization check failed", "error", err, "user_id", user.ID, "permission", permission)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !hasAccess {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"role", user.Role,
				"required_permission", permission)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Require builds chi-compatible middleware gating a subtree on one permission.
func (ra *RBAC) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

// RequireRole gates a subtree on explicit role membership, for the few
// routes (catalog admin) that are role-bound rather than permission-bound.
func (ra *RBAC) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: role not allowed",
				"user_id", user.ID,
				"role", user.Role,
				"allowed_roles", roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

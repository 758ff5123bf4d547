package internal

import (
	"context"
)

// SessionUser is the authenticated principal attached to every request.
// Permissions are resolved server-side from the role's grant set so that
// handlers and clients share one source of truth.
type SessionUser struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u *SessionUser) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *SessionUser) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

type ctxKey string

const contextUserKey ctxKey = "sessionUser"

func ContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(contextUserKey).(*SessionUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

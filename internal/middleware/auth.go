// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

const (
	identityKey     contextKey = "identity"
	staleSessionKey contextKey = "stale_session"
)

const roleAdmin = "admin"

// Identity is the caller resolved for the current request. It is rebuilt
// from the session row and the current user row on every request, so Role
// always reflects what is stored now.
type Identity struct {
	UserID    int64
	Email     string
	Name      string
	Role      string
	SessionID string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == roleAdmin
}

// IdentityResolver turns the credentials carried by a request into an
// Identity. It returns (nil, nil) when the request carries none and an
// error wrapping core.ErrSessionInvalid when they no longer resolve.
type IdentityResolver interface {
	ResolveRequest(r *http.Request) (*Identity, error)
}

// LoadIdentity attaches the caller's Identity to the request context when
// one resolves. Invalid or expired sessions leave the request anonymous
// and are remembered so guards can answer SESSION_INVALID. A store failure
// aborts with 500.
func LoadIdentity(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolver.ResolveRequest(r)
			if err != nil {
				if !errors.Is(err, core.ErrSessionInvalid) {
					core.InternalServerError(w, err)
					return
				}
				identity = nil
				r = r.WithContext(
					context.WithValue(r.Context(), staleSessionKey, true),
				)
			}

			if identity != nil {
				setLoggedUser(r.Context(), identity.UserID)
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) == nil {
			rejectAnonymous(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous requests with 401 and authenticated
// requests outside roles with 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				rejectAnonymous(w, r)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(roleAdmin)(next)
}

func rejectAnonymous(w http.ResponseWriter, r *http.Request) {
	if stale, _ := r.Context().Value(staleSessionKey).(bool); stale {
		core.JSONError(w, core.SessionInvalidError())
		return
	}
	core.JSONError(w, core.UnauthorizedError("authentication required"))
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// GetUserID returns the caller's id, or nil for anonymous requests.
func GetUserID(ctx context.Context) *int64 {
	identity := GetIdentity(ctx)
	if identity == nil {
		return nil
	}
	id := identity.UserID
	return &id
}

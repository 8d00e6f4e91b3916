// Package authz is the role half of the access guard. It runs after
// auth.RequireUser and decides whether the verified identity may reach
// an organizer-restricted operation. Roles are not claims on the
// credential; they live in the user store and are looked up per request
// so a demotion takes effect immediately.
package authz

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNoUser is what a RoleSource returns when the email has no account.
var ErrNoUser = errors.New("user not found")

// RoleSource resolves an email to a role. The user store implements it;
// tests supply a map-backed fake.
type RoleSource interface {
	Role(ctx context.Context, email string) (string, error)
}

// Guard enforces role requirements on routes.
type Guard struct {
	roles RoleSource
	log   *zap.Logger
}

// NewGuard constructs a role guard over the given source.
func NewGuard(roles RoleSource, logger *zap.Logger) *Guard {
	return &Guard{roles: roles, log: logger}
}

// RequireOrganizer rejects with 403 unless the identity in context has
// the organizer role. Must be chained after auth.RequireUser; a missing
// identity fails closed.
func (g *Guard) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.CurrentIdentity(r)
		if !ok {
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}

		role, err := g.roles.Role(r.Context(), id.Email)
		if err != nil {
			if !errors.Is(err, ErrNoUser) {
				g.log.Error("role lookup failed", zap.String("email", id.Email), zap.Error(err))
			}
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}
		if role != models.RoleOrganizer {
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IsOrganizer reports whether the request's identity holds the
// organizer role. Handlers use this where behavior, not access, varies
// by role (e.g. payment-listing scope).
func (g *Guard) IsOrganizer(r *http.Request) bool {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		return false
	}
	role, err := g.roles.Role(r.Context(), id.Email)
	return err == nil && role == models.RoleOrganizer
}

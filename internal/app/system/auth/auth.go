// Package auth is the identity half of the access guard: it extracts
// the bearer credential from the Authorization header, verifies it
// against the identity provider, and attaches the verified identity to
// the request context. Role checks live in the authz package.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"go.uber.org/zap"
)

// Identity is what a successfully verified credential yields. Email is
// normalized and is the key every store uses.
type Identity struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

// Verifier validates a bearer credential and yields the identity it
// belongs to. Implementations: the Firebase client in this package and
// the fake in testutil.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// ErrInvalidToken is returned by verifiers for credentials that are
// expired, malformed, or signed by the wrong issuer.
var ErrInvalidToken = errors.New("invalid or expired credential")

type ctxKey struct{}

// CurrentIdentity returns the verified identity placed in the request
// context by RequireUser.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(ctxKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a request carrying the identity in its context.
// Handler tests use this to skip the middleware.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))
}

// Guard verifies bearer credentials on protected routes.
type Guard struct {
	verifier Verifier
	log      *zap.Logger
}

// NewGuard constructs a Guard around the given verifier.
func NewGuard(verifier Verifier, logger *zap.Logger) *Guard {
	return &Guard{verifier: verifier, log: logger}
}

// RequireUser rejects requests without a credential (401) or with one
// the verifier refuses (403), and otherwise stores the identity in the
// request context for downstream handlers and role checks.
func (g *Guard) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		id, err := g.verifier.Verify(r.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				g.log.Error("credential verification failed", zap.Error(err))
			}
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}
		id.Email = normalize.Email(id.Email)

		next.ServeHTTP(w, WithIdentity(r, id))
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <t>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

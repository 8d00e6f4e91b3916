package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents identity data for testing HTTP handlers.
type TestUser struct {
	UID   string
	Email string
	Name  string
}

// ParticipantUser returns a TestUser for an ordinary participant.
func ParticipantUser() TestUser {
	return TestUser{
		UID:   "uid-participant",
		Email: "participant@test.com",
		Name:  "Test Participant",
	}
}

// OrganizerUser returns a TestUser intended to carry the organizer role.
// The role itself lives in the users collection, so tests pair this with
// a fixture user or a fake role source.
func OrganizerUser() TestUser {
	return TestUser{
		UID:   "uid-organizer",
		Email: "organizer@test.com",
		Name:  "Test Organizer",
	}
}

// WithUser adds a verified identity to the request context for testing
// authenticated handlers. This bypasses the bearer-token middleware and
// injects the identity directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithIdentity(r, auth.Identity{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with an identity in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}

// NewJSONRequest creates an HTTP request with a JSON body and an identity
// in context.
func NewJSONRequest(method, target, body string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return WithUser(req, user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body %q does not contain %q", r.Body.String(), expected)
	}
}

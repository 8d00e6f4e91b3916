package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/camphub/internal/app/features/users"
	userstore "github.com/dalemusser/camphub/internal/app/store/users"
	"github.com/dalemusser/camphub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return users.NewHandler(userstore.New(db), zap.NewNop()), testutil.NewFixtures(t, db)
}

func postJSON(target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func TestCreate_SecondCallReportsExisting(t *testing.T) {
	h, _ := newHandler(t)

	req, rec := postJSON("/users", `{"email":"new@test.com","name":"New User"}`)
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d, want %d", rec.Code, http.StatusCreated)
	}

	req, rec = postJSON("/users", `{"email":"new@test.com","name":"New User"}`)
	h.Create(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second create: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "user already exists") {
		t.Errorf("second create body: %s", rec.Body.String())
	}
}

func TestCreate_MissingEmail(t *testing.T) {
	h, _ := newHandler(t)

	req, rec := postJSON("/users", `{"name":"No Email"}`)
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateProfile_NoFields(t *testing.T) {
	h, _ := newHandler(t)

	req, rec := postJSON("/users/profile-update", `{"email":"x@test.com"}`)
	req.Method = "PATCH"
	h.UpdateProfile(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateProfile_MissingUser(t *testing.T) {
	h, _ := newHandler(t)

	req, rec := postJSON("/users/profile-update", `{"email":"ghost@test.com","name":"Ghost"}`)
	req.Method = "PATCH"
	h.UpdateProfile(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRole_SelfLookup(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateParticipant(ctx, "participant@test.com", "Test Participant")

	req := testutil.NewAuthenticatedRequest("GET", "/users/role", testutil.ParticipantUser())
	rec := httptest.NewRecorder()
	h.Role(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Role != "participant" {
		t.Errorf("role: got %q, want participant", body.Role)
	}
}

func TestRole_ForeignLookupNeedsOrganizer(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateParticipant(ctx, "participant@test.com", "Test Participant")
	fx.CreateOrganizer(ctx, "organizer@test.com", "Test Organizer")

	req := testutil.NewAuthenticatedRequest("GET", "/users/role?email=organizer@test.com", testutil.ParticipantUser())
	rec := httptest.NewRecorder()
	h.Role(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("participant foreign lookup: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/users/role?email=participant@test.com", testutil.OrganizerUser())
	rec = httptest.NewRecorder()
	h.Role(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("organizer foreign lookup: got %d, want %d", rec.Code, http.StatusOK)
	}
}

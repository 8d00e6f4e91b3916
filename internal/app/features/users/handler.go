package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/camphub/internal/app/store/users"
	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/app/system/timeouts"
	"github.com/dalemusser/camphub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the user account endpoints.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type createRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
}

// Create handles POST /users. Creating the same email twice is not an
// error: the second call reports that the account already exists and
// leaves the stored user untouched.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if normalize.Email(req.Email) == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, created, err := h.Users.Upsert(ctx, models.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	})
	if err != nil {
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if !created {
		httpjson.Write(w, http.StatusOK, map[string]any{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}
	httpjson.Write(w, http.StatusCreated, u)
}

type touchRequest struct {
	Email          string     `json:"email"`
	LastSignInTime *time.Time `json:"lastSignInTime"`
}

// TouchSignIn handles PATCH /users, stamping the account's last
// sign-in time. The body may carry the time; absent, now is used.
func (h *Handler) TouchSignIn(w http.ResponseWriter, r *http.Request) {
	var req touchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if normalize.Email(req.Email) == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	at := time.Now().UTC()
	if req.LastSignInTime != nil {
		at = req.LastSignInTime.UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.TouchSignIn(ctx, req.Email, at); err != nil {
		h.Log.Error("touch sign-in failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "sign-in time updated"})
}

type profileRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
}

// UpdateProfile handles PATCH /users/profile-update. Only the supplied
// fields change.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if normalize.Email(req.Email) == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, req.Email, userstore.ProfileUpdate{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	switch {
	case errors.Is(err, userstore.ErrNoFields):
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
	case errors.Is(err, userstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "user not found")
	case err != nil:
		h.Log.Error("profile update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update profile")
	default:
		httpjson.Write(w, http.StatusOK, map[string]string{"message": "profile updated"})
	}
}

// Role handles GET /users/role. The email query parameter defaults to
// the caller's own; only organizers may look up someone else's role.
func (h *Handler) Role(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := normalize.Email(normalize.QueryParam(r.URL.Query().Get("email")))
	if email == "" {
		email = ident.Email
	}
	if email != ident.Email {
		// Looking up a foreign role requires the organizer role on the caller.
		callerRole, err := h.Users.Role(ctx, ident.Email)
		if err != nil && !errors.Is(err, userstore.ErrNotFound) {
			h.Log.Error("role lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to look up role")
			return
		}
		if callerRole != models.RoleOrganizer {
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}
	}

	role, err := h.Users.Role(ctx, email)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("role lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to look up role")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"role": role})
}

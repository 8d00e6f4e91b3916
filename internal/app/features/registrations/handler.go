package registrations

import (
	"context"
	"errors"
	"net/http"

	registrationstore "github.com/dalemusser/camphub/internal/app/store/registrations"
	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/authz"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/app/system/timeouts"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the registration endpoints.
type Handler struct {
	Regs  *registrationstore.Store
	Roles *authz.Guard
	Log   *zap.Logger
}

func NewHandler(regs *registrationstore.Store, roles *authz.Guard, logger *zap.Logger) *Handler {
	return &Handler{Regs: regs, Roles: roles, Log: logger}
}

type registerRequest struct {
	CampID           string `json:"campId"`
	ParticipantName  string `json:"participantName"`
	Age              int    `json:"age"`
	Phone            string `json:"phoneNumber"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergencyContact"`
}

// Register handles POST /camp-registration. The registration is always
// recorded against the caller's own verified email.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.CampID == "" {
		httpjson.Error(w, http.StatusBadRequest, "campId is required")
		return
	}
	campID, err := primitive.ObjectIDFromHex(req.CampID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid camp id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	reg, err := h.Regs.Register(ctx, models.Registration{
		CampID:           campID,
		Email:            ident.Email,
		ParticipantName:  req.ParticipantName,
		Age:              req.Age,
		Phone:            req.Phone,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	})
	if errors.Is(err, registrationstore.ErrCampNotFound) {
		httpjson.Error(w, http.StatusNotFound, "camp not found")
		return
	}
	if err != nil {
		h.Log.Error("camp registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}
	httpjson.Write(w, http.StatusCreated, reg)
}

// All handles GET /camps-registered, the organizer's full listing.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Regs.All(ctx)
	if err != nil {
		h.Log.Error("list registrations failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	httpjson.Write(w, http.StatusOK, regs)
}

// Mine handles GET /registered-camps. Participants always see their own
// registrations; an organizer may pass ?email= to see someone else's.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	email := ident.Email
	if q := normalize.Email(normalize.QueryParam(r.URL.Query().Get("email"))); q != "" && q != ident.Email {
		if !h.Roles.IsOrganizer(r) {
			httpjson.Error(w, http.StatusForbidden, "forbidden access")
			return
		}
		email = q
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Regs.ByEmail(ctx, email)
	if err != nil {
		h.Log.Error("list registrations failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	httpjson.Write(w, http.StatusOK, regs)
}

// Get handles GET /registered-camp/{registrationID}, the pre-payment
// fetch of a single registration.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	id, ok := registrationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reg, err := h.Regs.GetByID(ctx, id)
	if errors.Is(err, registrationstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "registration not found")
		return
	}
	if err != nil {
		h.Log.Error("load registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load registration")
		return
	}
	if reg.Email != ident.Email && !h.Roles.IsOrganizer(r) {
		httpjson.Error(w, http.StatusForbidden, "forbidden access")
		return
	}
	httpjson.Write(w, http.StatusOK, reg)
}

// Cancel handles DELETE /cancel-registration/{registrationID}. Only the
// registration's owner or an organizer may cancel it.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	id, ok := registrationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	reg, err := h.Regs.GetByID(ctx, id)
	if errors.Is(err, registrationstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "registration not found")
		return
	}
	if err != nil {
		h.Log.Error("load registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to cancel registration")
		return
	}
	if reg.Email != ident.Email && !h.Roles.IsOrganizer(r) {
		httpjson.Error(w, http.StatusForbidden, "forbidden access")
		return
	}

	err = h.Regs.Cancel(ctx, id)
	if errors.Is(err, registrationstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "registration not found")
		return
	}
	if err != nil {
		h.Log.Error("cancel registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to cancel registration")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "registration cancelled"})
}

func registrationID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "registrationID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid registration id")
		return primitive.NilObjectID, false
	}
	return id, true
}

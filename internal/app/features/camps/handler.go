package camps

import (
	"context"
	"errors"
	"net/http"
	"strings"

	campstore "github.com/dalemusser/camphub/internal/app/store/camps"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/paging"
	"github.com/dalemusser/camphub/internal/app/system/timeouts"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the camp catalog endpoints.
type Handler struct {
	Camps *campstore.Store
	Log   *zap.Logger
}

func NewHandler(camps *campstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Camps: camps, Log: logger}
}

type campRequest struct {
	Name                   *string `json:"name"`
	Description            *string `json:"description"`
	Location               *string `json:"location"`
	DateTime               *string `json:"dateTime"`
	Fees                   *int64  `json:"fees"`
	HealthcareProfessional *string `json:"healthcareProfessional"`
	ImageURL               *string `json:"imageURL"`
}

// Create handles POST /camps.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req campRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Fees != nil && *req.Fees < 0 {
		httpjson.Error(w, http.StatusBadRequest, "fees must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	camp, err := h.Camps.Create(ctx, req.toModel())
	if err != nil {
		h.Log.Error("create camp failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create camp")
		return
	}
	httpjson.Write(w, http.StatusCreated, camp)
}

// All handles GET /camps, the organizer's unpaged listing.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	camps, err := h.Camps.All(ctx)
	if err != nil {
		h.Log.Error("list camps failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list camps")
		return
	}
	httpjson.Write(w, http.StatusOK, camps)
}

// Paginated handles GET /camps/paginated.
func (h *Handler) Paginated(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.Parse(r)
	camps, totalPages, err := h.Camps.Paginated(ctx, page)
	if err != nil {
		h.Log.Error("paginated camps failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list camps")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"camps":       camps,
		"totalPages":  totalPages,
		"currentPage": page.Page,
	})
}

// Popular handles GET /camps/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	camps, err := h.Camps.Popular(ctx)
	if err != nil {
		h.Log.Error("popular camps failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list camps")
		return
	}
	httpjson.Write(w, http.StatusOK, camps)
}

// Details handles GET /camp-details/{campID}.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := campID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	camp, err := h.Camps.GetByID(ctx, id)
	if errors.Is(err, campstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "camp not found")
		return
	}
	if err != nil {
		h.Log.Error("camp details failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load camp")
		return
	}
	httpjson.Write(w, http.StatusOK, camp)
}

// Update handles PATCH /update-camp/{campID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := campID(w, r)
	if !ok {
		return
	}

	var req campRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Fees != nil && *req.Fees < 0 {
		httpjson.Error(w, http.StatusBadRequest, "fees must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Camps.Update(ctx, id, campstore.Update{
		Name:                   req.Name,
		Description:            req.Description,
		Location:               req.Location,
		DateTime:               req.DateTime,
		Fees:                   req.Fees,
		HealthcareProfessional: req.HealthcareProfessional,
		ImageURL:               req.ImageURL,
	})
	switch {
	case errors.Is(err, campstore.ErrNoFields):
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
	case errors.Is(err, campstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "camp not found")
	case err != nil:
		h.Log.Error("update camp failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update camp")
	default:
		httpjson.Write(w, http.StatusOK, map[string]string{"message": "camp updated"})
	}
}

// Delete handles DELETE /delete-camp/{campID}. Camps with live
// registrations cannot be removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := campID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Camps.Delete(ctx, id)
	switch {
	case errors.Is(err, campstore.ErrHasRegistrations):
		httpjson.Error(w, http.StatusConflict, "camp has registrations")
	case errors.Is(err, campstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "camp not found")
	case err != nil:
		h.Log.Error("delete camp failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete camp")
	default:
		httpjson.Write(w, http.StatusOK, map[string]string{"message": "camp deleted"})
	}
}

func (req campRequest) toModel() (camp models.Camp) {
	if req.Name != nil {
		camp.Name = *req.Name
	}
	if req.Description != nil {
		camp.Description = *req.Description
	}
	if req.Location != nil {
		camp.Location = *req.Location
	}
	if req.DateTime != nil {
		camp.DateTime = *req.DateTime
	}
	if req.Fees != nil {
		camp.Fees = *req.Fees
	}
	if req.HealthcareProfessional != nil {
		camp.HealthcareProfessional = *req.HealthcareProfessional
	}
	if req.ImageURL != nil {
		camp.ImageURL = *req.ImageURL
	}
	return camp
}

func campID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "campID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid camp id")
		return primitive.NilObjectID, false
	}
	return id, true
}

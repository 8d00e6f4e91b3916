package feedback

import (
	"context"
	"net/http"

	feedbackstore "github.com/dalemusser/camphub/internal/app/store/feedback"
	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/timeouts"
	"github.com/dalemusser/camphub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the feedback endpoints.
type Handler struct {
	Feedback *feedbackstore.Store
	Log      *zap.Logger
}

func NewHandler(fb *feedbackstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Feedback: fb, Log: logger}
}

type createRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"feedbackText"`
}

// Create handles POST /feedbacks. The content is user-generated HTML
// and goes through the sanitizer before storage.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		httpjson.Error(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	content := htmlsanitize.Sanitize(req.Content)
	if content == "" {
		httpjson.Error(w, http.StatusBadRequest, "feedback text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fb, err := h.Feedback.Create(ctx, models.Feedback{
		Email:   ident.Email,
		Name:    ident.Name,
		Rating:  req.Rating,
		Content: content,
	})
	if err != nil {
		h.Log.Error("create feedback failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}
	httpjson.Write(w, http.StatusCreated, fb)
}

// All handles GET /feedbacks, the public listing.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Feedback.All(ctx)
	if err != nil {
		h.Log.Error("list feedback failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	httpjson.Write(w, http.StatusOK, entries)
}

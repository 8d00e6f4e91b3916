package payments

import (
	"context"
	"errors"
	"net/http"

	paymentstore "github.com/dalemusser/camphub/internal/app/store/payments"
	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/authz"
	"github.com/dalemusser/camphub/internal/app/system/httpjson"
	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/app/system/paymentintent"
	"github.com/dalemusser/camphub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the payment endpoints.
type Handler struct {
	Payments *paymentstore.Store
	Intents  paymentintent.Provider
	Roles    *authz.Guard
	Log      *zap.Logger
}

func NewHandler(payments *paymentstore.Store, intents paymentintent.Provider, roles *authz.Guard, logger *zap.Logger) *Handler {
	return &Handler{Payments: payments, Intents: intents, Roles: roles, Log: logger}
}

type intentRequest struct {
	Amount int64 `json:"amount"`
}

// CreateIntent handles POST /create-payment-intent. The amount is in
// cents; the response carries the provider's client secret for the
// card confirmation step.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	secret, err := h.Intents.CreateIntent(ctx, req.Amount)
	if errors.Is(err, paymentintent.ErrInvalidAmount) {
		httpjson.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if err != nil {
		h.Log.Error("create payment intent failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

type recordRequest struct {
	RegistrationID string `json:"registrationId"`
	PaymentMethod  string `json:"paymentMethod"`
	TransactionID  string `json:"transactionId"`
}

// Record handles POST /payments, marking a registration paid after a
// successful charge. The registration is addressed by its own id, a
// missing registration is 404 and a repeat payment is 409.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.RegistrationID == "" {
		httpjson.Error(w, http.StatusBadRequest, "registrationId is required")
		return
	}
	regID, err := primitive.ObjectIDFromHex(req.RegistrationID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.Payments.Record(ctx, regID, method, req.TransactionID)
	switch {
	case errors.Is(err, paymentstore.ErrRegistrationNotFound):
		httpjson.Error(w, http.StatusNotFound, "registration not found")
	case errors.Is(err, paymentstore.ErrAlreadyPaid):
		httpjson.Error(w, http.StatusConflict, "registration already paid")
	case err != nil:
		h.Log.Error("record payment failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to record payment")
	default:
		httpjson.Write(w, http.StatusCreated, p)
	}
}

// List handles GET /payments. Participants always get their own
// history no matter what the query string says; organizers may filter
// by ?email= or omit it for everything.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	query := normalize.Email(normalize.QueryParam(r.URL.Query().Get("email")))

	if !h.Roles.IsOrganizer(r) {
		h.list(w, r, ident.Email)
		return
	}
	if query != "" {
		h.list(w, r, query)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	payments, err := h.Payments.All(ctx)
	if err != nil {
		h.Log.Error("list payments failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	httpjson.Write(w, http.StatusOK, payments)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, email string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	payments, err := h.Payments.ByEmail(ctx, email)
	if err != nil {
		h.Log.Error("list payments failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	httpjson.Write(w, http.StatusOK, payments)
}

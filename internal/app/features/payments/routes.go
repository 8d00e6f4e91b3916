// internal/app/features/payments/routes.go
package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the /payments endpoints. The intent
// path lives at the router root and is registered in bootstrap.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireUser)
	r.Post("/", h.Record)
	r.Get("/", h.List)
	return r
}

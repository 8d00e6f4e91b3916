// internal/app/features/feedback/routes.go
package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the /feedbacks endpoints. Reading is
// public; writing needs a verified identity.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.All)
	r.With(requireUser).Post("/", h.Create)
	return r
}

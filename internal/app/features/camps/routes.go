// internal/app/features/camps/routes.go
package camps

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the /camps endpoints. The paginated
// and popular listings are public; creation and the full listing are
// organizer-only. The camp-details, update-camp and delete-camp paths
// live at the router root and are registered in bootstrap.
func Routes(h *Handler, requireOrganizer func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/paginated", h.Paginated)
	r.Get("/popular", h.Popular)
	r.Group(func(r chi.Router) {
		r.Use(requireOrganizer)
		r.Post("/", h.Create)
		r.Get("/", h.All)
	})
	return r
}

// internal/app/features/registrations/routes.go
package registrations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the registration endpoints directly on the given
// router; the paths predate this service and do not share a prefix.
func Routes(r chi.Router, h *Handler, requireUser, requireOrganizer func(http.Handler) http.Handler) {
	r.With(requireUser).Post("/camp-registration", h.Register)
	r.With(requireUser, requireOrganizer).Get("/camps-registered", h.All)
	r.With(requireUser).Get("/registered-camps", h.Mine)
	r.With(requireUser).Get("/registered-camp/{registrationID}", h.Get)
	r.With(requireUser).Delete("/cancel-registration/{registrationID}", h.Cancel)
}

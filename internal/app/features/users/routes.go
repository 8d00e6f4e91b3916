// internal/app/features/users/routes.go
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the user endpoints. requireUser guards
// the role lookup; account creation and sign-in touches happen before a
// verified identity exists, so they stay open.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Patch("/", h.TouchSignIn)
	r.Patch("/profile-update", h.UpdateProfile)
	r.With(requireUser).Get("/role", h.Role)
	return r
}

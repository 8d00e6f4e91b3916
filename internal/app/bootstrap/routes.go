// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"errors"
	"net/http"

	campsfeature "github.com/dalemusser/camphub/internal/app/features/camps"
	feedbackfeature "github.com/dalemusser/camphub/internal/app/features/feedback"
	healthfeature "github.com/dalemusser/camphub/internal/app/features/health"
	paymentsfeature "github.com/dalemusser/camphub/internal/app/features/payments"
	registrationsfeature "github.com/dalemusser/camphub/internal/app/features/registrations"
	usersfeature "github.com/dalemusser/camphub/internal/app/features/users"
	campstore "github.com/dalemusser/camphub/internal/app/store/camps"
	feedbackstore "github.com/dalemusser/camphub/internal/app/store/feedback"
	paymentstore "github.com/dalemusser/camphub/internal/app/store/payments"
	registrationstore "github.com/dalemusser/camphub/internal/app/store/registrations"
	userstore "github.com/dalemusser/camphub/internal/app/store/users"
	"github.com/dalemusser/camphub/internal/app/system/auth"
	"github.com/dalemusser/camphub/internal/app/system/authz"
	"github.com/dalemusser/camphub/internal/app/system/paymentintent"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// roleSource adapts the user store to the role guard's error contract.
type roleSource struct {
	users *userstore.Store
}

func (s roleSource) Role(ctx context.Context, email string) (string, error) {
	role, err := s.users.Role(ctx, email)
	if errors.Is(err, userstore.ErrNotFound) {
		return "", authz.ErrNoUser
	}
	return role, err
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// CampHub builds the Firebase verifier and the role guard, wires the
// stores over the shared Mongo database, and mounts the feature routers.
// A few paths (camp-details, update-camp, delete-camp, camp-registration
// and friends) predate this service and live at the router root instead
// of under a feature prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewFirebaseVerifier(context.Background(), appCfg.FirebaseCredentials)
	if err != nil {
		logger.Error("firebase verifier init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)

	userGuard := auth.NewGuard(verifier, logger)
	roleGuard := authz.NewGuard(roleSource{users: users}, logger)
	requireUser := userGuard.RequireUser
	requireOrganizer := roleGuard.RequireOrganizer

	intents := paymentintent.NewStripeProvider(appCfg.StripeSecretKey)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts and roles
	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, requireUser))

	// Camp catalog
	campsHandler := campsfeature.NewHandler(campstore.New(deps.MongoDatabase), logger)
	r.Mount("/camps", campsfeature.Routes(campsHandler, func(next http.Handler) http.Handler {
		return requireUser(requireOrganizer(next))
	}))
	r.Get("/camp-details/{campID}", campsHandler.Details)
	r.With(requireUser, requireOrganizer).Patch("/update-camp/{campID}", campsHandler.Update)
	r.With(requireUser, requireOrganizer).Put("/update-camp/{campID}", campsHandler.Update)
	r.With(requireUser, requireOrganizer).Delete("/delete-camp/{campID}", campsHandler.Delete)

	// Registrations
	regsHandler := registrationsfeature.NewHandler(registrationstore.New(deps.MongoDatabase), roleGuard, logger)
	registrationsfeature.Routes(r, regsHandler, requireUser, requireOrganizer)

	// Payments
	paymentsHandler := paymentsfeature.NewHandler(paymentstore.New(deps.MongoDatabase), intents, roleGuard, logger)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, requireUser))
	r.With(requireUser).Post("/create-payment-intent", paymentsHandler.CreateIntent)

	// Feedback
	feedbackHandler := feedbackfeature.NewHandler(feedbackstore.New(deps.MongoDatabase), logger)
	r.Mount("/feedbacks", feedbackfeature.Routes(feedbackHandler, requireUser))

	return r, nil
}

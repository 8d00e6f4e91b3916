// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/camphub/internal/app/store/users"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// CampHub uses it to guarantee a first organizer account exists when
// one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.OrganizerEmail == "" {
		return nil
	}
	return ensureOrganizer(ctx, deps, appCfg.OrganizerEmail, logger)
}

// ensureOrganizer creates the account if it does not exist yet and
// grants it the organizer role. Safe to run on every startup.
func ensureOrganizer(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	u, created, err := users.Upsert(ctx, models.User{Email: email})
	if err != nil {
		logger.Error("organizer bootstrap: upsert failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if err := users.PromoteOrganizer(ctx, u.Email); err != nil {
		logger.Error("organizer bootstrap: promote failed", zap.String("email", email), zap.Error(err))
		return err
	}

	if created {
		logger.Info("organizer account created", zap.String("email", u.Email))
	} else {
		logger.Info("organizer role ensured", zap.String("email", u.Email))
	}
	return nil
}

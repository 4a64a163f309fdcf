package settings

import (
	"database/sql"

	"go.uber.org/zap"

	"storeadmin/internal/prefs"
	"storeadmin/internal/settings/controller"
	"storeadmin/internal/settings/repository"
)

func NewModule(
	db *sql.DB,
	preferences *prefs.Store,
	logger *zap.Logger,
) *controller.SettingsController {
	brandingRepo := repository.NewPostgresBrandingRepository(db)
	return controller.NewSettingsController(brandingRepo, preferences, logger)
}

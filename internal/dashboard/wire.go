package dashboard

import (
	"database/sql"

	"go.uber.org/zap"

	categoryrepository "storeadmin/internal/category/repository"
	"storeadmin/internal/dashboard/controller"
	"storeadmin/internal/dashboard/usecase"
	orderrepository "storeadmin/internal/order/repository"
	"storeadmin/internal/prefs"
	productrepository "storeadmin/internal/product/repository"
)

func NewModule(
	db *sql.DB,
	preferences *prefs.Store,
	logger *zap.Logger,
) *controller.DashboardController {
	statsUC := usecase.NewStatsUseCase(
		orderrepository.NewPostgresOrderRepository(db),
		productrepository.NewPostgresProductRepository(db),
		categoryrepository.NewPostgresCategoryRepository(db),
		preferences,
		logger,
	)

	return controller.NewDashboardController(statsUC, logger)
}

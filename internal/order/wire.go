package order

import (
	"database/sql"

	"go.uber.org/zap"

	"storeadmin/internal/order/controller"
	"storeadmin/internal/order/repository"
	"storeadmin/internal/order/usecase"
	"storeadmin/internal/realtime"
	"storeadmin/internal/refresh"
	"storeadmin/internal/signals"
	"storeadmin/internal/view"
)

func NewModule(
	db *sql.DB,
	coord *refresh.Coordinator,
	hub *realtime.Hub,
	bus *signals.Bus,
	views *view.Registry,
	logger *zap.Logger,
) *controller.OrdersController {
	orderRepo := repository.NewPostgresOrderRepository(db)

	listView := view.New("orders", orderRepo.FindAll, logger)
	coord.Register("orders", listView.Reload)
	views.Add(listView)

	advanceUC := usecase.NewAdvanceStatusUseCase(orderRepo, coord, hub, bus, logger)
	updateUC := usecase.NewUpdateOrderUseCase(orderRepo, coord, hub, bus, logger)

	return controller.NewOrdersController(listView, orderRepo, advanceUC, updateUC, logger)
}

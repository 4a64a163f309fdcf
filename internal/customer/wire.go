package customer

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"storeadmin/internal/customer/controller"
	"storeadmin/internal/domain"
	orderrepository "storeadmin/internal/order/repository"
	"storeadmin/internal/refresh"
	"storeadmin/internal/signals"
	"storeadmin/internal/view"
)

func NewModule(
	db *sql.DB,
	coord *refresh.Coordinator,
	bus *signals.Bus,
	views *view.Registry,
	logger *zap.Logger,
) *controller.CustomersController {
	orderRepo := orderrepository.NewPostgresOrderRepository(db)

	fetch := func(ctx context.Context) ([]domain.Customer, error) {
		orders, err := orderRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return domain.AggregateCustomers(orders), nil
	}

	listView := view.New("customers", fetch, logger)
	coord.Register("customers", listView.Reload)
	views.Add(listView)
	watchOrderMutations(bus, listView)

	return controller.NewCustomersController(listView, logger)
}

// watchOrderMutations reloads the derived customer list whenever an
// order mutation is broadcast, since customers are recomputed from
// orders on every load. Returns the subscription's cancel function.
func watchOrderMutations(bus *signals.Bus, v *view.View[domain.Customer]) func() {
	return bus.Subscribe(signals.OrdersMutated, func() {
		go v.Reload(context.Background())
	})
}

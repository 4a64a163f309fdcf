package product

import (
	"database/sql"

	"go.uber.org/zap"

	"storeadmin/internal/product/controller"
	"storeadmin/internal/product/repository"
	"storeadmin/internal/product/usecase"
	"storeadmin/internal/refresh"
	"storeadmin/internal/storage"
	"storeadmin/internal/view"
)

type Module struct {
	Controller *controller.ProductsController
	// Repository is shared with the category module, which clears the
	// soft category reference on products when a category is deleted.
	Repository *repository.PostgresProductRepository
}

func NewModule(
	db *sql.DB,
	coord *refresh.Coordinator,
	store storage.ObjectStore,
	views *view.Registry,
	logger *zap.Logger,
) *Module {
	productRepo := repository.NewPostgresProductRepository(db)

	listView := view.New("products", productRepo.FindAll, logger)
	coord.Register("products", listView.Reload)
	views.Add(listView)

	saveUC := usecase.NewSaveProductUseCase(productRepo, coord, logger)
	deleteUC := usecase.NewDeleteProductUseCase(productRepo, store, coord, logger)

	return &Module{
		Controller: controller.NewProductsController(listView, productRepo, saveUC, deleteUC, logger),
		Repository: productRepo,
	}
}

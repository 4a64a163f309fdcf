package category

import (
	"database/sql"

	"go.uber.org/zap"

	"storeadmin/internal/category/controller"
	"storeadmin/internal/category/repository"
	"storeadmin/internal/category/usecase"
	"storeadmin/internal/refresh"
	"storeadmin/internal/storage"
	"storeadmin/internal/view"
)

func NewModule(
	db *sql.DB,
	coord *refresh.Coordinator,
	products usecase.ProductDetacher,
	store storage.ObjectStore,
	views *view.Registry,
	logger *zap.Logger,
) *controller.CategoriesController {
	categoryRepo := repository.NewPostgresCategoryRepository(db)

	listView := view.New("categories", categoryRepo.FindAll, logger)
	coord.Register("categories", listView.Reload)
	views.Add(listView)

	saveUC := usecase.NewSaveCategoryUseCase(categoryRepo, store, coord, logger)
	deleteUC := usecase.NewDeleteCategoryUseCase(categoryRepo, products, store, coord, logger)

	return controller.NewCategoriesController(listView, saveUC, deleteUC, logger)
}

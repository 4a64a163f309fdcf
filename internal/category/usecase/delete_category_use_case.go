package usecase

import (
	"context"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

// ProductDetacher clears the soft category reference on products.
type ProductDetacher interface {
	DetachCategory(ctx context.Context, categoryName string) (int64, error)
}

// ImageRemover is the slice of the object store category deletion needs.
type ImageRemover interface {
	Remove(ctx context.Context, objectPath string) error
	ObjectPath(url string) (string, bool)
}

// DeleteCategoryUseCase removes a category and its side effects:
// products referencing it by name get an empty category field, and the
// category's stored image is removed. Earlier steps are not rolled back
// when a later one fails; the operation surfaces the error and the user
// retries.
type DeleteCategoryUseCase struct {
	categoryRepo CategoryRepository
	products     ProductDetacher
	images       ImageRemover
	refresher    Refresher
	logger       *zap.Logger
}

func NewDeleteCategoryUseCase(
	categoryRepo CategoryRepository,
	products ProductDetacher,
	images ImageRemover,
	refresher Refresher,
	logger *zap.Logger,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		products:     products,
		images:       images,
		refresher:    refresher,
		logger:       logger,
	}
}

func (uc *DeleteCategoryUseCase) Delete(ctx context.Context, id int) error {
	cat, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	detached, err := uc.products.DetachCategory(ctx, cat.Name)
	if err != nil {
		return err
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cat.ImageURL != "" {
		if path, ok := uc.images.ObjectPath(cat.ImageURL); ok {
			if err := uc.images.Remove(ctx, path); err != nil {
				return err
			}
		}
	}

	uc.logger.Info("category deleted",
		zap.Int("categoryId", id),
		zap.String("name", cat.Name),
		zap.Int64("detachedProducts", detached))
	uc.refresher.Bump()

	return nil
}

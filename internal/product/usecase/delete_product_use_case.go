package usecase

import (
	"context"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

// ImageRemover is the slice of the object store product deletion needs.
type ImageRemover interface {
	Remove(ctx context.Context, objectPath string) error
	ObjectPath(url string) (string, bool)
}

// DeleteProductUseCase removes a product together with the images it
// stored. Foreign image URLs are left untouched.
type DeleteProductUseCase struct {
	productRepo ProductRepository
	images      ImageRemover
	refresher   Refresher
	logger      *zap.Logger
}

func NewDeleteProductUseCase(
	productRepo ProductRepository,
	images ImageRemover,
	refresher Refresher,
	logger *zap.Logger,
) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo: productRepo,
		images:      images,
		refresher:   refresher,
		logger:      logger,
	}
}

func (uc *DeleteProductUseCase) Delete(ctx context.Context, id int) error {
	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range product.Images {
		path, ok := uc.images.ObjectPath(img.URL)
		if !ok {
			continue
		}
		if err := uc.images.Remove(ctx, path); err != nil {
			// The row is already gone; log and keep removing the rest.
			uc.logger.Warn("removing product image failed",
				zap.Int("productId", id),
				zap.String("objectPath", path),
				zap.Error(err))
		}
	}

	uc.logger.Info("product deleted", zap.Int("productId", id), zap.String("name", product.Name))
	uc.refresher.Bump()
	return nil
}

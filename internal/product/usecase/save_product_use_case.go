package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
)

type ProductWriteRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (int, error)
	Update(ctx context.Context, product *domain.Product) error
}

type Refresher interface {
	Bump()
}

// SaveProductUseCase backs the product editor's create and save actions.
type SaveProductUseCase struct {
	productRepo ProductWriteRepository
	refresher   Refresher
	logger      *zap.Logger
}

func NewSaveProductUseCase(productRepo ProductWriteRepository, refresher Refresher, logger *zap.Logger) *SaveProductUseCase {
	return &SaveProductUseCase{
		productRepo: productRepo,
		refresher:   refresher,
		logger:      logger,
	}
}

func (uc *SaveProductUseCase) Create(ctx context.Context, product *domain.Product) (int, error) {
	if err := validateProduct(product); err != nil {
		return 0, err
	}

	id, err := uc.productRepo.Insert(ctx, product)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("product created", zap.Int("productId", id), zap.String("name", product.Name))
	uc.refresher.Bump()
	return id, nil
}

func (uc *SaveProductUseCase) Update(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return err
	}

	uc.logger.Info("product updated", zap.Int("productId", product.ID), zap.String("name", product.Name))
	uc.refresher.Bump()
	return nil
}

func validateProduct(product *domain.Product) error {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(product.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if product.Price < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

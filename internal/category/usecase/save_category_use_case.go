package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
)

type CategoryWriteRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	Insert(ctx context.Context, cat *domain.Category) (int, error)
	Update(ctx context.Context, cat *domain.Category) error
}

type Refresher interface {
	Bump()
}

// SaveCategoryUseCase backs the add/edit category drawers.
type SaveCategoryUseCase struct {
	categoryRepo CategoryWriteRepository
	images       ImageRemover
	refresher    Refresher
	logger       *zap.Logger
}

func NewSaveCategoryUseCase(
	categoryRepo CategoryWriteRepository,
	images ImageRemover,
	refresher Refresher,
	logger *zap.Logger,
) *SaveCategoryUseCase {
	return &SaveCategoryUseCase{
		categoryRepo: categoryRepo,
		images:       images,
		refresher:    refresher,
		logger:       logger,
	}
}

func (uc *SaveCategoryUseCase) Create(ctx context.Context, cat *domain.Category) (int, error) {
	if err := validateCategory(cat); err != nil {
		return 0, err
	}

	id, err := uc.categoryRepo.Insert(ctx, cat)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("category created", zap.Int("categoryId", id), zap.String("name", cat.Name))
	uc.refresher.Bump()
	return id, nil
}

// Update saves the drawer edit. When the image was replaced the old
// stored object is removed first, mirroring the drawer's behavior.
func (uc *SaveCategoryUseCase) Update(ctx context.Context, cat *domain.Category) error {
	if err := validateCategory(cat); err != nil {
		return err
	}

	existing, err := uc.categoryRepo.FindByID(ctx, cat.ID)
	if err != nil {
		return err
	}

	if existing.ImageURL != "" && cat.ImageURL != existing.ImageURL {
		if path, ok := uc.images.ObjectPath(existing.ImageURL); ok {
			if err := uc.images.Remove(ctx, path); err != nil {
				return err
			}
		}
	}

	if err := uc.categoryRepo.Update(ctx, cat); err != nil {
		return err
	}

	uc.logger.Info("category updated", zap.Int("categoryId", cat.ID), zap.String("name", cat.Name))
	uc.refresher.Bump()
	return nil
}

func validateCategory(cat *domain.Category) error {
	if strings.TrimSpace(cat.Name) == "" {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	return nil
}

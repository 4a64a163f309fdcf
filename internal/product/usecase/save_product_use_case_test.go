package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	dtoerrors "storeadmin/internal/errors"
)

type mockProductWriteRepository struct {
	InsertFunc func(ctx context.Context, product *domain.Product) (int, error)
	UpdateFunc func(ctx context.Context, product *domain.Product) error
}

func (m *mockProductWriteRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return nil, dtoerrors.NewNotFoundError("not implemented")
}

func (m *mockProductWriteRepository) Insert(ctx context.Context, product *domain.Product) (int, error) {
	return m.InsertFunc(ctx, product)
}

func (m *mockProductWriteRepository) Update(ctx context.Context, product *domain.Product) error {
	return m.UpdateFunc(ctx, product)
}

func TestSaveProduct_CreateBumpsRefresh(t *testing.T) {
	ctx := context.Background()

	repo := &mockProductWriteRepository{
		InsertFunc: func(ctx context.Context, product *domain.Product) (int, error) { return 5, nil },
	}
	refresher := &mockRefresher{}

	uc := NewSaveProductUseCase(repo, refresher, zap.NewNop())

	id, err := uc.Create(ctx, &domain.Product{Name: "Cold Brew", Price: 4.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 5 {
		t.Errorf("expected id 5, got %d", id)
	}
	if refresher.bumps != 1 {
		t.Errorf("expected one refresh bump, got %d", refresher.bumps)
	}
}

func TestSaveProduct_RejectsBlankNameAndNegativePrice(t *testing.T) {
	ctx := context.Background()

	repo := &mockProductWriteRepository{
		InsertFunc: func(ctx context.Context, product *domain.Product) (int, error) {
			t.Fatal("insert should not be called")
			return 0, nil
		},
	}

	uc := NewSaveProductUseCase(repo, &mockRefresher{}, zap.NewNop())

	_, err := uc.Create(ctx, &domain.Product{Name: " ", Price: -1})
	ve, ok := dtoerrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Details) != 2 {
		t.Errorf("expected two validation details, got %d", len(ve.Details))
	}
}

func TestSaveProduct_UpdateBumpsRefresh(t *testing.T) {
	ctx := context.Background()

	repo := &mockProductWriteRepository{
		UpdateFunc: func(ctx context.Context, product *domain.Product) error { return nil },
	}
	refresher := &mockRefresher{}

	uc := NewSaveProductUseCase(repo, refresher, zap.NewNop())

	if err := uc.Update(ctx, &domain.Product{ID: 5, Name: "Cold Brew", Price: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refresher.bumps != 1 {
		t.Errorf("expected one refresh bump, got %d", refresher.bumps)
	}
}

func TestSaveProduct_UpdateNotFoundDoesNotBump(t *testing.T) {
	ctx := context.Background()

	repo := &mockProductWriteRepository{
		UpdateFunc: func(ctx context.Context, product *domain.Product) error {
			return dtoerrors.NewNotFoundError("product not found")
		},
	}
	refresher := &mockRefresher{}

	uc := NewSaveProductUseCase(repo, refresher, zap.NewNop())

	if err := uc.Update(ctx, &domain.Product{ID: 99, Name: "Ghost"}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if refresher.bumps != 0 {
		t.Errorf("expected no refresh bump, got %d", refresher.bumps)
	}
}

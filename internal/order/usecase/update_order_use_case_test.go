package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	dtoerrors "storeadmin/internal/errors"
	"storeadmin/internal/signals"
)

type mockOrderWriteRepository struct {
	UpdateFunc func(ctx context.Context, order *domain.Order) error
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockOrderWriteRepository) Update(ctx context.Context, order *domain.Order) error {
	return m.UpdateFunc(ctx, order)
}

func (m *mockOrderWriteRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func TestUpdateOrder_AcceptsAnyKnownStatus(t *testing.T) {
	ctx := context.Background()

	// The backend imposes no sequence constraint: a direct write from
	// Delivered back to Pending is accepted.
	var saved *domain.Order
	repo := &mockOrderWriteRepository{
		UpdateFunc: func(ctx context.Context, order *domain.Order) error {
			saved = order
			return nil
		},
	}
	refresher := &mockRefresher{}

	uc := NewUpdateOrderUseCase(repo, refresher, &mockBroadcaster{}, signals.NewBus(), zap.NewNop())

	order := &domain.Order{ID: "o1", Status: domain.OrderStatusPending, TotalPrice: 150}
	if err := uc.Update(ctx, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil || saved.Status != domain.OrderStatusPending {
		t.Errorf("expected wholesale save with status Pending, got %+v", saved)
	}
	if refresher.bumps != 1 {
		t.Errorf("expected one refresh bump, got %d", refresher.bumps)
	}
}

func TestUpdateOrder_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderWriteRepository{
		UpdateFunc: func(ctx context.Context, order *domain.Order) error {
			t.Error("Update must not be called for an unknown status")
			return nil
		},
	}

	uc := NewUpdateOrderUseCase(repo, &mockRefresher{}, &mockBroadcaster{}, signals.NewBus(), zap.NewNop())

	err := uc.Update(ctx, &domain.Order{ID: "o1", Status: "Refunded"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := dtoerrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestDeleteOrder_NotifiesOnSuccess(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderWriteRepository{
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	refresher := &mockRefresher{}
	hub := &mockBroadcaster{}
	bus := signals.NewBus()

	mutations := 0
	bus.Subscribe(signals.OrdersMutated, func() { mutations++ })

	uc := NewUpdateOrderUseCase(repo, refresher, hub, bus, zap.NewNop())

	if err := uc.Delete(ctx, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutations != 1 {
		t.Errorf("expected one ordersMutated signal, got %d", mutations)
	}
	if refresher.bumps != 1 {
		t.Errorf("expected one refresh bump, got %d", refresher.bumps)
	}
}

package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/refresh"
	"storeadmin/internal/signals"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// Refresher is the slice of the refresh coordinator mutations need.
type Refresher interface {
	Bump()
}

type Broadcaster interface {
	Broadcast(messageType string, data interface{})
}

// AdvanceStatusUseCase moves an order one step along the fixed status
// sequence. It only ever offers the single next status; arbitrary
// writes go through the update flow, which the backend accepts without
// sequence checks.
type AdvanceStatusUseCase struct {
	orderRepo OrderRepository
	refresher Refresher
	hub       Broadcaster
	bus       *signals.Bus
	logger    *zap.Logger
}

func NewAdvanceStatusUseCase(
	orderRepo OrderRepository,
	refresher Refresher,
	hub Broadcaster,
	bus *signals.Bus,
	logger *zap.Logger,
) *AdvanceStatusUseCase {
	return &AdvanceStatusUseCase{
		orderRepo: orderRepo,
		refresher: refresher,
		hub:       hub,
		bus:       bus,
		logger:    logger,
	}
}

// Advance reads the order's current status, computes the next one in
// the sequence and writes that single field. A failed write leaves the
// displayed status unchanged until the next reload reveals the
// backend's true state; nothing is applied optimistically.
func (uc *AdvanceStatusUseCase) Advance(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	next, ok := order.Status.Next()
	if !ok {
		return "", apperrors.NewConflictError(
			fmt.Sprintf("order %s has status %q, no next status to advance to", orderID, order.Status))
	}

	if err := uc.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		return "", err
	}

	uc.logger.Info("order status advanced",
		zap.String("orderId", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	uc.notifyChanged(orderID)
	return next, nil
}

func (uc *AdvanceStatusUseCase) notifyChanged(orderID string) {
	uc.bus.Publish(signals.OrdersMutated)
	uc.refresher.Bump()
	if uc.hub != nil {
		uc.hub.Broadcast("change", refresh.ChangeEvent{Table: "orders", Op: "UPDATE", ID: orderID})
	}
}

package usecase

import (
	"context"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/refresh"
	"storeadmin/internal/signals"
)

type OrderWriteRepository interface {
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

// UpdateOrderUseCase saves the whole order drawer in one call: status,
// checkout details and cart items. The status may be any known value —
// the backend enforces no progression, the workflow only suggests one.
type UpdateOrderUseCase struct {
	orderRepo OrderWriteRepository
	refresher Refresher
	hub       Broadcaster
	bus       *signals.Bus
	logger    *zap.Logger
}

func NewUpdateOrderUseCase(
	orderRepo OrderWriteRepository,
	refresher Refresher,
	hub Broadcaster,
	bus *signals.Bus,
	logger *zap.Logger,
) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{
		orderRepo: orderRepo,
		refresher: refresher,
		hub:       hub,
		bus:       bus,
		logger:    logger,
	}
}

func (uc *UpdateOrderUseCase) Update(ctx context.Context, order *domain.Order) error {
	if !order.Status.Valid() {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of the known order statuses",
		})
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	uc.logger.Info("order updated", zap.String("orderId", order.ID), zap.String("status", string(order.Status)))
	uc.notifyChanged(order.ID, "UPDATE")
	return nil
}

func (uc *UpdateOrderUseCase) Delete(ctx context.Context, orderID string) error {
	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	uc.logger.Info("order deleted", zap.String("orderId", orderID))
	uc.notifyChanged(orderID, "DELETE")
	return nil
}

func (uc *UpdateOrderUseCase) notifyChanged(orderID, op string) {
	uc.bus.Publish(signals.OrdersMutated)
	uc.refresher.Bump()
	if uc.hub != nil {
		uc.hub.Broadcast("change", refresh.ChangeEvent{Table: "orders", Op: op, ID: orderID})
	}
}

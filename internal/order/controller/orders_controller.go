package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/view"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

type AdvanceStatusUseCase interface {
	Advance(ctx context.Context, orderID string) (domain.OrderStatus, error)
}

type UpdateOrderUseCase interface {
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, orderID string) error
}

type OrdersController struct {
	listView  *view.View[domain.Order]
	reader    OrderReader
	advanceUC AdvanceStatusUseCase
	updateUC  UpdateOrderUseCase
	logger    *zap.Logger
}

func NewOrdersController(
	listView *view.View[domain.Order],
	reader OrderReader,
	advanceUC AdvanceStatusUseCase,
	updateUC UpdateOrderUseCase,
	logger *zap.Logger,
) *OrdersController {
	return &OrdersController{
		listView:  listView,
		reader:    reader,
		advanceUC: advanceUC,
		updateUC:  updateUC,
		logger:    logger,
	}
}

type orderRow struct {
	domain.Order
	// NextStatus is the one transition the UI may offer; empty when the
	// order is terminal or carries a status outside the sequence.
	NextStatus domain.OrderStatus `json:"nextStatus,omitempty"`
}

// List serves the current snapshot of the orders view.
func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	if err := c.listView.Ensure(r.Context()); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("loading orders", err))
		return
	}

	orders := c.listView.Items()
	rows := make([]orderRow, len(orders))
	for i, o := range orders {
		rows[i] = orderRow{Order: o}
		if next, ok := o.Status.Next(); ok {
			rows[i].NextStatus = next
		}
	}

	respond.JSON(w, c.logger, http.StatusOK, rows)
}

// Get serves a single order for the drawer deep link.
func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")

	order, err := c.reader.FindByID(r.Context(), orderID)
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	row := orderRow{Order: *order}
	if next, ok := order.Status.Next(); ok {
		row.NextStatus = next
	}

	respond.JSON(w, c.logger, http.StatusOK, row)
}

// Advance moves the order to the next status in the fixed sequence.
func (c *OrdersController) Advance(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")

	next, err := c.advanceUC.Advance(r.Context(), orderID)
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]string{
		"orderId": orderID,
		"status":  string(next),
	})
}

// Update saves the whole order drawer in one call.
func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")

	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	order.ID = orderID

	if err := c.updateUC.Update(r.Context(), &order); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]string{"orderId": orderID})
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")

	if err := c.updateUC.Delete(r.Context(), orderID); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]string{"orderId": orderID})
}

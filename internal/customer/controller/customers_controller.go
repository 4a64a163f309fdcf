package controller

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/view"
)

// CustomersController serves the derived customer list. There is no
// customers table; rows are aggregated from orders at load time.
type CustomersController struct {
	listView *view.View[domain.Customer]
	logger   *zap.Logger
}

func NewCustomersController(listView *view.View[domain.Customer], logger *zap.Logger) *CustomersController {
	return &CustomersController{listView: listView, logger: logger}
}

func (c *CustomersController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	if err := c.listView.Ensure(r.Context()); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("loading customers", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, c.listView.Items())
}

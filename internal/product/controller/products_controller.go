package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/view"
)

type ProductReader interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type SaveProductUseCase interface {
	Create(ctx context.Context, product *domain.Product) (int, error)
	Update(ctx context.Context, product *domain.Product) error
}

type DeleteProductUseCase interface {
	Delete(ctx context.Context, id int) error
}

type ProductsController struct {
	listView *view.View[domain.Product]
	reader   ProductReader
	saveUC   SaveProductUseCase
	deleteUC DeleteProductUseCase
	logger   *zap.Logger
}

func NewProductsController(
	listView *view.View[domain.Product],
	reader ProductReader,
	saveUC SaveProductUseCase,
	deleteUC DeleteProductUseCase,
	logger *zap.Logger,
) *ProductsController {
	return &ProductsController{
		listView: listView,
		reader:   reader,
		saveUC:   saveUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// List serves the current snapshot of the products view.
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	if err := c.listView.Ensure(r.Context()); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("loading products", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, c.listView.Items())
}

// Get serves one product with its images, descriptions and variants.
func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, ok := c.productID(w, r, traceID)
	if !ok {
		return
	}

	product, err := c.reader.FindByID(r.Context(), id)
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, product)
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	id, err := c.saveUC.Create(r.Context(), &product)
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusCreated, map[string]int{"id": id})
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, ok := c.productID(w, r, traceID)
	if !ok {
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	product.ID = id

	if err := c.saveUC.Update(r.Context(), &product); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]int{"id": id})
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, ok := c.productID(w, r, traceID)
	if !ok {
		return
	}

	if err := c.deleteUC.Delete(r.Context(), id); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]int{"id": id})
}

func (c *ProductsController) productID(w http.ResponseWriter, r *http.Request, traceID string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid product id", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "product id must be an integer",
		})
		return 0, false
	}
	return id, true
}

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

type SaveCategoryUseCase interface {
	Create(ctx context.Context, cat *domain.Category) (int, error)
	Update(ctx context.Context, cat *domain.Category) error
}

type DeleteCategoryUseCase interface {
	Delete(ctx context.Context, id int) error
}

type CategoriesController struct {
	listView *view.View[domain.Category]
	saveUC   SaveCategoryUseCase
	deleteUC DeleteCategoryUseCase
	logger   *zap.Logger
}

func NewCategoriesController(
	listView *view.View[domain.Category],
	saveUC SaveCategoryUseCase,
	deleteUC DeleteCategoryUseCase,
	logger *zap.Logger,
) *CategoriesController {
	return &CategoriesController{
		listView: listView,
		saveUC:   saveUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// List serves the current snapshot of the categories view.
func (c *CategoriesController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	if err := c.listView.Ensure(r.Context()); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("loading categories", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, c.listView.Items())
}

func (c *CategoriesController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var cat domain.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	id, err := c.saveUC.Create(r.Context(), &cat)
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusCreated, map[string]int{"id": id})
}

func (c *CategoriesController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, ok := c.categoryID(w, r, traceID)
	if !ok {
		return
	}

	var cat domain.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	cat.ID = id

	if err := c.saveUC.Update(r.Context(), &cat); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]int{"id": id})
}

func (c *CategoriesController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	id, ok := c.categoryID(w, r, traceID)
	if !ok {
		return
	}

	if err := c.deleteUC.Delete(r.Context(), id); err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]int{"id": id})
}

func (c *CategoriesController) categoryID(w http.ResponseWriter, r *http.Request, traceID string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "categoryId"))
	if err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid category id", apperrors.ValidationDetail{
			Field:   "categoryId",
			Message: "category id must be an integer",
		})
		return 0, false
	}
	return id, true
}

package controller

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/dashboard/usecase"
)

type StatsUseCase interface {
	Compute(ctx context.Context) (*usecase.Stats, error)
}

type DashboardController struct {
	statsUC StatsUseCase
	logger  *zap.Logger
}

func NewDashboardController(statsUC StatsUseCase, logger *zap.Logger) *DashboardController {
	return &DashboardController{statsUC: statsUC, logger: logger}
}

// Stats serves the dashboard numbers for the selected date range.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	stats, err := c.statsUC.Compute(r.Context())
	if err != nil {
		respond.Error(w, c.logger, traceID, err)
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, stats)
}

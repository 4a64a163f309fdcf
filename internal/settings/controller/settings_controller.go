package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/daterange"
	"storeadmin/internal/domain"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/prefs"
)

type BrandingRepository interface {
	Get(ctx context.Context) (*domain.Branding, error)
	Save(ctx context.Context, branding *domain.Branding) error
}

type SettingsController struct {
	branding    BrandingRepository
	preferences *prefs.Store
	logger      *zap.Logger
}

func NewSettingsController(branding BrandingRepository, preferences *prefs.Store, logger *zap.Logger) *SettingsController {
	return &SettingsController{
		branding:    branding,
		preferences: preferences,
		logger:      logger,
	}
}

func (c *SettingsController) GetBranding(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	branding, err := c.branding.Get(r.Context())
	if err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("loading branding", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, branding)
}

// SaveBranding replaces the whole branding document in one write.
func (c *SettingsController) SaveBranding(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var branding domain.Branding
	if err := json.NewDecoder(r.Body).Decode(&branding); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.branding.Save(r.Context(), &branding); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("saving branding", err))
		return
	}

	c.logger.Info("branding saved", zap.String("traceId", traceID))
	respond.JSON(w, c.logger, http.StatusOK, map[string]string{"status": "saved"})
}

type preferencesResponse struct {
	LiveUpdates bool            `json:"liveUpdates"`
	DateRange   daterange.Range `json:"dateRange"`
}

func (c *SettingsController) GetPreferences(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, c.logger, http.StatusOK, preferencesResponse{
		LiveUpdates: c.preferences.LiveUpdates(),
		DateRange:   c.preferences.DateRange(),
	})
}

func (c *SettingsController) SetLiveUpdates(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.preferences.SetLiveUpdates(r.Context(), body.Enabled); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("saving live updates preference", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}

func (c *SettingsController) SetDateRange(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var body daterange.Range
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if !body.Value.Valid() {
		respond.ValidationError(w, c.logger, traceID, "invalid date range", apperrors.ValidationDetail{
			Field:   "value",
			Message: "value must be one of today, week, month, year, custom",
		})
		return
	}
	if body.Value == daterange.ValueCustom && (body.Start.IsZero() || body.End.IsZero()) {
		respond.ValidationError(w, c.logger, traceID, "invalid date range", apperrors.ValidationDetail{
			Field:   "start",
			Message: "custom ranges need both start and end dates",
		})
		return
	}

	if err := c.preferences.SetDateRange(r.Context(), body); err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("saving date range preference", err))
		return
	}

	respond.JSON(w, c.logger, http.StatusOK, body)
}

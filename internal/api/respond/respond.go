package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "storeadmin/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func JSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// Error maps the error taxonomy onto HTTP statuses and writes the
// standard error envelope.
func Error(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeError(w, logger, traceID, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		writeError(w, logger, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		writeError(w, logger, traceID, http.StatusUnauthorized, "AUTH_REQUIRED", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	writeError(w, logger, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func ValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	writeError(w, logger, traceID, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, code, message string, details []apperrors.ValidationDetail) {
	JSON(w, logger, status, ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

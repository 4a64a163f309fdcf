package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	apperrors "storeadmin/internal/errors"
)

type contextKey string

const emailKey contextKey = "authEmail"

// EmailFromContext returns the signed-in email set by Middleware.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// Middleware rejects requests without a valid bearer token. Every
// admin endpoint sits behind it; only the session and websocket
// routes are public.
func Middleware(issuer *TokenIssuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := uuid.New().String()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respond.Error(w, logger, traceID, apperrors.NewUnauthorizedError("please log in"))
				return
			}

			email, err := issuer.Verify(token)
			if err != nil {
				logger.Debug("rejected bearer token", zap.String("traceId", traceID), zap.Error(err))
				respond.Error(w, logger, traceID, apperrors.NewUnauthorizedError("please log in"))
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

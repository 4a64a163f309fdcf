package controller

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	"storeadmin/internal/auth"
	"storeadmin/internal/config"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/signals"
)

// SessionController signs the admin in and out. Signing in issues a
// bearer token and broadcasts the signed-in signal, which the wiring
// routes into a refresh bump; signing out broadcasts the signal that
// clears every cached view.
type SessionController struct {
	cfg    config.AuthConfig
	issuer *auth.TokenIssuer
	bus    *signals.Bus
	logger *zap.Logger
}

func NewSessionController(
	cfg config.AuthConfig,
	issuer *auth.TokenIssuer,
	bus *signals.Bus,
	logger *zap.Logger,
) *SessionController {
	return &SessionController{
		cfg:    cfg,
		issuer: issuer,
		bus:    bus,
		logger: logger,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *SessionController) SignIn(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var body signInRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if !c.credentialsMatch(body.Email, body.Password) {
		c.logger.Warn("sign in rejected", zap.String("traceId", traceID), zap.String("email", body.Email))
		respond.Error(w, c.logger, traceID, apperrors.NewUnauthorizedError("invalid email or password"))
		return
	}

	token, err := c.issuer.Issue(body.Email)
	if err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("issuing token", err))
		return
	}

	c.logger.Info("signed in", zap.String("traceId", traceID), zap.String("email", body.Email))
	c.bus.Publish(signals.SignedIn)

	respond.JSON(w, c.logger, http.StatusOK, map[string]string{"token": token})
}

func (c *SessionController) SignOut(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	c.logger.Info("signed out", zap.String("traceId", traceID))
	c.bus.Publish(signals.SignedOut)

	respond.JSON(w, c.logger, http.StatusOK, map[string]string{"status": "signed out"})
}

func (c *SessionController) credentialsMatch(email, password string) bool {
	if c.cfg.AdminEmail == "" || c.cfg.AdminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.cfg.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.cfg.AdminPassword)) == 1
	return emailOK && passwordOK
}

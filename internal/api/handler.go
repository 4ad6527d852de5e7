package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/logger"
	"github.com/terraincognita07/phasecast/internal/services"
)

const (
	authCookieName      = "phasecast_auth"
	contextUserKey      = "user"
	defaultAuthTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	auth         *services.AuthService
	predictions  *services.PredictionService
	reference    *services.ReferenceService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	log          *logrus.Entry
	loginLimiter *attemptLimiter
	now          func() time.Time
}

type HandlerOptions struct {
	Auth         *services.AuthService
	Predictions  *services.PredictionService
	Reference    *services.ReferenceService
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Logger       logrus.FieldLogger
}

func NewHandler(options HandlerOptions) (*Handler, error) {
	if options.Auth == nil || options.Predictions == nil || options.Reference == nil {
		return nil, errors.New("auth, prediction and reference services are required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		auth:         options.Auth,
		predictions:  options.Predictions,
		reference:    options.Reference,
		secretKey:    []byte(options.SecretKey),
		location:     location,
		cookieSecure: options.CookieSecure,
		log:          logger.Component(options.Logger, "api"),
		loginLimiter: newAttemptLimiter(),
		now:          time.Now,
	}, nil
}

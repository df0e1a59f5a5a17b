package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pulsehr/feedback-flow/internal/api/handler"
	"github.com/pulsehr/feedback-flow/internal/api/middleware"
	"github.com/pulsehr/feedback-flow/internal/core/domain"
	"github.com/pulsehr/feedback-flow/internal/core/ports"
	httphandlers "github.com/pulsehr/feedback-flow/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	AuthService     ports.AuthService
	FeedbackService ports.FeedbackService
	JWTSecret       string
	Mongo           *mongo.Database
	Redis           *redis.Client
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("feedback"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	feedbackHandler := handler.NewFeedbackHandler(deps.FeedbackService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.VerifySession)

	// --- Feedback workflow routes ---
	// Creation is HR-only; verify and submit are capability-authenticated by
	// the token itself, so they carry no session requirement.
	e.POST("/feedback/request", feedbackHandler.Create, authMiddleware, middleware.RBAC(domain.RoleHR))
	e.GET("/feedback/verify", feedbackHandler.Verify)
	e.POST("/feedback/submit", feedbackHandler.Submit)

	// --- Health probes (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

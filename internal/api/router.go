package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamehall/account-system/internal/api/handler"
	"github.com/gamehall/account-system/internal/api/middleware"
	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

// Dependencies carries everything the router needs; construction of services
// happens in main so tests can inject stubs.
type Dependencies struct {
	Auth   ports.AuthService
	Admin  ports.AdminService
	Tokens ports.TokenService
	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
	// Registry overrides the Prometheus registry for request metrics.
	// Nil means the default registry; tests inject a fresh one so that
	// building several routers does not collide on registration.
	Registry *prometheus.Registry
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

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "account",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	adminAuth := middleware.AdminAuth(deps.Tokens)
	superAdminOnly := middleware.RequireRole(domain.RoleSuperAdmin)

	// --- Public auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/check-status/:identifier", authHandler.CheckStatus)

	// --- Admin routes ---
	admin := e.Group("/api/admin")
	admin.POST("/login", adminHandler.Login)
	admin.GET("/users", adminHandler.ListUsers, adminAuth)
	admin.GET("/users/:id", adminHandler.GetUser, adminAuth)
	admin.GET("/stats", adminHandler.Stats, adminAuth)
	admin.PUT("/users/:id/approve", adminHandler.Approve, adminAuth)
	admin.PUT("/users/:id/reject", adminHandler.Reject, adminAuth)
	admin.PUT("/users/:id/toggle-active", adminHandler.ToggleActive, adminAuth)
	admin.PUT("/users/:id/balance", adminHandler.SetBalance, adminAuth)
	admin.DELETE("/users/:id", adminHandler.Delete, adminAuth, superAdminOnly)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness: is the process alive?
	if deps.Mongo != nil && deps.Redis != nil {
		readiness := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readiness.Readiness) // readiness: are dependencies up?
	}

	return e
}

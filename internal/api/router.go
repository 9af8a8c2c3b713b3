package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/markaai/booking-gateway/internal/api/handler"
	"github.com/markaai/booking-gateway/internal/api/middleware"
	"github.com/markaai/booking-gateway/internal/core/ports"
	"github.com/markaai/booking-gateway/internal/infrastructure/http/handlers"
	"github.com/markaai/booking-gateway/internal/infrastructure/upstream"
)

// RouterConfig carries the wired services and optional storage backends the
// router exposes through health probes.
type RouterConfig struct {
	JWTSecret string
	Sessions  ports.SessionService
	Tenants   ports.WorkspaceResolver
	Audit     ports.AuditSink
	Upstream  upstream.Config
	Mongo     *mongo.Database // nil unless the mongo driver is selected
	Redis     *redis.Client   // nil unless the redis driver is selected
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))
	e.Use(middleware.Session(cfg.JWTSecret, cfg.Sessions))

	sessionHandler := handler.NewSessionHandler(cfg.Sessions)
	workspaceHandler := handler.NewWorkspaceHandler(cfg.Tenants)
	proxyHandler := handler.NewProxyHandler(cfg.Upstream, cfg.Tenants)

	// --- Auth routes (open) ---
	e.POST("/auth/register", sessionHandler.Register)
	e.POST("/auth/login", sessionHandler.Login)
	e.GET("/auth/me", sessionHandler.Me)
	e.POST("/auth/logout", sessionHandler.Logout)

	// --- Workspace routes (any authenticated identity) ---
	workspaces := e.Group("/workspaces", middleware.Gate(cfg.Audit))
	workspaces.GET("", workspaceHandler.List)
	workspaces.POST("/refresh", workspaceHandler.Refresh)
	workspaces.GET("/active", workspaceHandler.Active)
	workspaces.PUT("/active", workspaceHandler.SetActive)

	// --- Guarded application routes, driven by the route table ---
	for _, route := range GuardedRoutes {
		e.Any(route.Path, proxyHandler.Forward, middleware.Gate(cfg.Audit, route.Roles...))
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis, cfg.Upstream.BaseURL)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Unknown paths go back to the public root, matching the SPA's
	// catch-all route.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/")
	})

	return e
}

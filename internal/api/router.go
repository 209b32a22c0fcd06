package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Yasmeen645/Bug-Tracking-System/docs"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/handler"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/middleware"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// Deps are the services the router exposes.
type Deps struct {
	Directory ports.Directory
	Tracker   ports.Tracker
	Auth      ports.AuthService
	// Inbox serves GET /v1/notifications. Nil leaves the route out.
	Inbox     ports.Inbox
	JWTSecret string
	Logger    zerolog.Logger
	// Health lists the backends checked by /health/ready.
	Health map[string]handler.Pinger
	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bugtracker",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Directory)
	accountHandler := handler.NewAccountHandler(d.Directory)
	bugHandler := handler.NewBugHandler(d.Tracker, d.Directory)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))
	v1.GET("/me", authHandler.Me)

	admin := middleware.RBAC(domain.RoleAdministrator)
	v1.GET("/accounts", accountHandler.List, admin)
	v1.POST("/accounts", accountHandler.Create, admin)
	v1.PUT("/accounts/:username", accountHandler.Update, admin)
	v1.DELETE("/accounts/:username", accountHandler.Delete, admin)
	v1.GET("/developers", accountHandler.Developers,
		middleware.RBAC(domain.RoleAdministrator, domain.RoleProjectManager, domain.RoleTester))

	v1.GET("/bugs", bugHandler.List)
	v1.GET("/bugs/:id", bugHandler.Get)
	v1.POST("/bugs", bugHandler.Report,
		middleware.RBAC(domain.RoleTester, domain.RoleProjectManager, domain.RoleAdministrator))
	v1.PUT("/bugs/:id/assignee", bugHandler.Assign,
		middleware.RBAC(domain.RoleProjectManager, domain.RoleAdministrator))
	v1.PUT("/bugs/:id/status", bugHandler.UpdateStatus,
		middleware.RBAC(domain.RoleDeveloper, domain.RoleAdministrator))

	if d.Inbox != nil {
		v1.GET("/notifications", handler.NewNotificationHandler(d.Inbox, d.Directory).List)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

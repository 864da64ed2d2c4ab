package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/leadbook/crm-api/docs"
	"github.com/leadbook/crm-api/internal/api/handler"
	"github.com/leadbook/crm-api/internal/api/middleware"
	"github.com/leadbook/crm-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are built by the
// caller so the router stays free of storage concerns.
type Deps struct {
	Auth      ports.AuthService
	Customers ports.CustomerService
	Leads     ports.LeadService
	Identity  ports.IdentityResolver

	// Readiness checks by dependency name; nil marks a dependency disabled.
	Readiness map[string]handler.DependencyCheck

	Cookie handler.CookieOptions
	Log    zerolog.Logger

	// Metrics registry for HTTP request metrics. Defaults to a fresh
	// registry; domain counters on the default registry are always exposed.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestContext(d.Log))
	e.Use(middleware.AccessLog())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "crm",
		Registerer: reg,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	customerHandler := handler.NewCustomerHandler(d.Customers)
	leadHandler := handler.NewLeadHandler(d.Leads)
	requireAuth := middleware.Auth(d.Identity)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Customers ---
	customers := e.Group("/customers", requireAuth)
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.GET("/:customerId/leads", leadHandler.ListByCustomer)
	customers.POST("/:customerId/leads", leadHandler.Create)

	// --- Leads ---
	leads := e.Group("/leads", requireAuth)
	leads.GET("/status/:status", leadHandler.ListByStatus)
	leads.GET("/:id", leadHandler.Get)
	leads.PUT("/:id", leadHandler.Update)
	leads.DELETE("/:id", leadHandler.Delete)

	return e
}

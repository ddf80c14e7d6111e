package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/api/handler"
	"github.com/rusafhasan/agencymanagement/internal/api/middleware"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
	ops "github.com/rusafhasan/agencymanagement/internal/infrastructure/http"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/http/handlers"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Auth       ports.AuthService
	Users      ports.UserService
	Workspaces ports.WorkspaceService
	Projects   ports.ProjectService
	Tasks      ports.TaskService
	Comments   ports.CommentService
	Payments   ports.PaymentService
	Revenues   ports.RevenueService
}

// Options configures NewRouter.
type Options struct {
	Logger   zerolog.Logger
	Verifier middleware.TokenVerifier
	Services Services
	// Checks are the dependencies reported by /health/ready.
	Checks []handlers.Check
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)
	e.Validator = handler.NewValidator()

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "agency",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/health" || p == "/health/ready"
		},
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	ops.RegisterOps(e, gatherer, opts.Checks...)

	// --- Handlers ---
	s := opts.Services
	authHandler := handler.NewAuthHandler(s.Auth)
	userHandler := handler.NewUserHandler(s.Users)
	workspaceHandler := handler.NewWorkspaceHandler(s.Workspaces)
	projectHandler := handler.NewProjectHandler(s.Projects)
	taskHandler := handler.NewTaskHandler(s.Tasks, s.Comments)
	paymentHandler := handler.NewPaymentHandler(s.Payments)
	revenueHandler := handler.NewRevenueHandler(s.Revenues)

	authMiddleware := middleware.Auth(opts.Verifier)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", authMiddleware)
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/change-password", authHandler.ChangePassword)
	authed.PUT("/auth/profile", authHandler.UpdateProfile)

	// --- Identities ---
	authed.GET("/users", userHandler.List)
	authed.GET("/users/:id", userHandler.Get)
	authed.PUT("/users/:id", userHandler.Update)

	// --- Workspaces ---
	authed.GET("/workspaces", workspaceHandler.List)
	authed.POST("/workspaces", workspaceHandler.Create)
	authed.GET("/workspaces/:id", workspaceHandler.Get)
	authed.PUT("/workspaces/:id", workspaceHandler.Rename)
	authed.DELETE("/workspaces/:id", workspaceHandler.Delete)

	// --- Projects ---
	authed.GET("/projects", projectHandler.List)
	authed.POST("/projects", projectHandler.Create)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.PUT("/projects/:id", projectHandler.Update)
	authed.DELETE("/projects/:id", projectHandler.Delete)
	authed.GET("/projects/:id/tasks", taskHandler.List)

	// --- Tasks and comments ---
	authed.POST("/tasks", taskHandler.Create)
	authed.GET("/tasks/:id", taskHandler.Get)
	authed.PUT("/tasks/:id", taskHandler.Update)
	authed.DELETE("/tasks/:id", taskHandler.Delete)
	authed.GET("/tasks/:id/comments", taskHandler.ListComments)
	authed.POST("/tasks/:id/comments", taskHandler.CreateComment)

	// --- Payments ---
	authed.GET("/payments", paymentHandler.List)
	authed.POST("/payments", paymentHandler.Create)
	authed.GET("/payments/:id", paymentHandler.Get)
	authed.PUT("/payments/:id", paymentHandler.Update)
	authed.DELETE("/payments/:id", paymentHandler.Delete)

	// --- Revenues (admin only) ---
	revenues := authed.Group("/revenues", middleware.RequireRole(domain.RoleAdmin))
	revenues.GET("", revenueHandler.List)
	revenues.POST("", revenueHandler.Create)
	revenues.GET("/:id", revenueHandler.Get)
	revenues.PUT("/:id", revenueHandler.Update)
	revenues.DELETE("/:id", revenueHandler.Delete)

	return e
}

// NewHandler wraps the router with CORS handling for the dashboard origins.
func NewHandler(e *echo.Echo, allowedOrigins []string) http.Handler {
	return middleware.CORS(allowedOrigins).Handler(e)
}

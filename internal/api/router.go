package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/biblioteca/library-system/internal/api/handler"
	"github.com/biblioteca/library-system/internal/api/middleware"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
	"github.com/biblioteca/library-system/internal/infrastructure/storage"
)

// Deps carries everything the router needs; composed in cmd/api.
type Deps struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Library  ports.LibraryService
	Sessions middleware.Sessions
	Store    *storage.Store
	Redis    *redis.Client // nil when sessions are in-memory
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("library"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	bookHandler := handler.NewBookHandler(deps.Library)
	loanHandler := handler.NewLoanHandler(deps.Library)

	authMiddleware := middleware.Auth(deps.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	session := e.Group("/auth", authMiddleware)
	session.POST("/logout", authHandler.Logout)
	session.GET("/validate", authHandler.Validate)
	session.GET("/me", authHandler.Me)

	// --- Catalog routes ---
	books := e.Group("/v1/books", authMiddleware)
	books.GET("", bookHandler.List)
	books.GET("/search", bookHandler.Search)
	books.GET("/category/:category", bookHandler.ByCategory)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Create, adminOnly)

	// --- Loan routes ---
	loans := e.Group("/v1/loans", authMiddleware)
	loans.POST("/borrow", loanHandler.Borrow)
	loans.GET("/history", loanHandler.History)
	loans.POST("/:id/return", loanHandler.Return)
	loans.GET("/:id", loanHandler.Get)
	loans.GET("", loanHandler.List, adminOnly)

	e.GET("/v1/stats", bookHandler.Stats, authMiddleware, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

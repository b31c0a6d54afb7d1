package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/finance-system/internal/api/handler"
	"github.com/fintrack/finance-system/internal/api/middleware"
	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
	"github.com/fintrack/finance-system/internal/core/service"
	mongodb "github.com/fintrack/finance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrack/finance-system/internal/infrastructure/db/redis"
)

// Config carries the dependencies the router cannot build itself.
type Config struct {
	Sessions        *service.SessionIssuer
	Notifier        ports.Notifier
	SuperAdminEmail string
	AppBaseURL      string
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("fintrack"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	statsCache := redisdb.NewStatsCache(rdb, cfg.Logger)

	creds := service.NewCredentialManager()
	tokenLedger := service.NewTokenLedger(tokenRepo, userRepo, creds, cfg.Notifier, cfg.AppBaseURL, cfg.Logger)
	authService := service.NewAuthService(userRepo, categoryRepo, creds, cfg.Sessions, tokenLedger, cfg.SuperAdminEmail, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, transactionRepo, statsCache, cfg.Logger)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, statsCache, cfg.Logger)
	statisticsService := service.NewStatisticsService(transactionRepo, categoryRepo, statsCache, cfg.Logger)
	adminService := service.NewAdminService(userRepo, categoryRepo, transactionRepo, tokenRepo, creds, statsCache, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(cfg.Sessions)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes (anonymous) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify-email/:token", authHandler.VerifyEmail)
	e.POST("/auth/resend-verification", authHandler.ResendVerification)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Session-scoped routes ---
	e.GET("/auth/me", authHandler.Me, authRequired)
	e.PUT("/profile", authHandler.UpdateProfile, authRequired)

	categories := e.Group("/categories", authRequired)
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	transactions := e.Group("/transactions", authRequired)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	e.GET("/statistics", statisticsHandler.Overview, authRequired)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stats", adminHandler.Stats)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/toggle-user-status/:id", adminHandler.ToggleUserStatus)
	admin.POST("/change-password", adminHandler.ChangePassword)

	// --- Ops surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

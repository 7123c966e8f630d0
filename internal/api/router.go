package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opendev-studio/site-api/internal/api/handler"
	"github.com/opendev-studio/site-api/internal/api/middleware"
	"github.com/opendev-studio/site-api/internal/core/service"
	"github.com/opendev-studio/site-api/internal/infrastructure/config"
	mongodb "github.com/opendev-studio/site-api/internal/infrastructure/db/mongo"
	"github.com/opendev-studio/site-api/internal/infrastructure/email"
	"github.com/opendev-studio/site-api/internal/infrastructure/queue"
)

const (
	sessionTTL        = 24 * time.Hour
	dispatcherWorkers = 4
)

// NewRouter builds the Echo instance with all routes registered and returns
// it with the notification dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	imageRepo := mongodb.NewProjectImageRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	contentRepo := mongodb.NewContentRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Services ---
	auditService := service.NewAuditService(auditRepo, log)
	contentService := service.NewContentService(contentRepo, auditService, log)

	mailer := email.NewSendGridMailer(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, "OpenDev")
	notifyService := service.NewNotifyService(mailer, func(ctx context.Context) string {
		return contentService.AdminEmail(ctx, cfg.Email.AdminEmail)
	}, cfg.BaseURL, log)
	dispatcher := queue.NewDispatcher(dispatcherWorkers, notifyService, log)

	authService := service.NewAuthService(userRepo, dispatcher, cfg.JWTSecret, sessionTTL, cfg.RequireEmailVerification, log)
	catalogService := service.NewCatalogService(serviceRepo, projectRepo, imageRepo, auditService, log)
	orderService := service.NewOrderService(orderRepo, serviceRepo, dispatcher, auditService, log)
	userService := service.NewUserService(userRepo, auditService, log)

	// --- Handlers ---
	allowFallback := cfg.AllowStaticFallback && !cfg.IsProduction()

	authHandler := handler.NewAuthHandler(authService)
	serviceHandler := handler.NewServiceHandler(catalogService, allowFallback)
	projectHandler := handler.NewProjectHandler(catalogService, allowFallback)
	imageHandler := handler.NewImageHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)
	contentHandler := handler.NewContentHandler(contentService)
	contactHandler := handler.NewContactHandler(dispatcher)
	actionHandler := handler.NewAdminActionHandler(auditService)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(db)
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Health)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Auth routes (rate-limited per route) ---
	loginLimiter := middleware.RateLimit(middleware.NewRateLimitStore(rdb, "login", 5, 15*time.Minute), "login")
	registerLimiter := middleware.RateLimit(middleware.NewRateLimitStore(rdb, "register", 3, time.Hour), "register")
	orderLimiter := middleware.RateLimit(middleware.NewRateLimitStore(rdb, "orders", 10, time.Hour), "orders")

	e.POST("/auth/register", authHandler.Register, registerLimiter)
	e.POST("/auth/login", authHandler.Login, loginLimiter)
	e.GET("/auth/verify", authHandler.Verify)

	// --- Public catalog and forms ---
	e.GET("/services", serviceHandler.List)
	e.GET("/services/:id", serviceHandler.Get)
	e.GET("/projects", projectHandler.List)
	e.GET("/projects/:id", projectHandler.Get)
	e.GET("/project-images", imageHandler.List)
	e.GET("/content", contentHandler.Get)
	e.POST("/orders", orderHandler.Create, orderLimiter)
	e.POST("/contact", contactHandler.Create)

	// --- Admin routes ---
	admin := e.Group("", middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin())

	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.PUT("/orders/:id", orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", orderHandler.Delete)

	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.PUT("/users/:id/ban", userHandler.UpdateBan)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.POST("/services", serviceHandler.Create)
	admin.PUT("/services/:id", serviceHandler.Update)
	admin.DELETE("/services/:id", serviceHandler.Delete)

	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects/:id", projectHandler.Update)
	admin.DELETE("/projects/:id", projectHandler.Delete)

	admin.POST("/project-images", imageHandler.Create)
	admin.DELETE("/project-images/:id", imageHandler.Delete)

	admin.PUT("/content", contentHandler.Update)
	admin.GET("/admin-actions", actionHandler.List)

	return e, dispatcher
}

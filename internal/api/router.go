package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servicehub/marketplace-api/internal/api/handler"
	"github.com/servicehub/marketplace-api/internal/api/middleware"
	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
	"github.com/servicehub/marketplace-api/internal/core/service"
	mongodb "github.com/servicehub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/servicehub/marketplace-api/internal/infrastructure/db/redis"
	"github.com/servicehub/marketplace-api/internal/infrastructure/http/handlers"
)

// Deps carries the external resources the router wires together.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Mailer    ports.Mailer
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("servicehub"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(deps.Mongo)
	workerRepo := mongodb.NewWorkerRepository(deps.Mongo)
	bookingRepo := mongodb.NewBookingRepository(deps.Mongo)
	chatRepo := mongodb.NewChatRepository(deps.Mongo)
	pendingStore := redisdb.NewPendingSignupStore(deps.Redis)
	slotLocker := redisdb.NewSlotLocker(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, pendingStore, deps.Mailer, deps.JWTSecret, deps.TokenTTL, deps.Log)
	workerService := service.NewWorkerService(workerRepo, accountRepo, deps.Log)
	bookingService := service.NewBookingService(bookingRepo, workerRepo, slotLocker, deps.Log)
	chatService := service.NewChatService(chatRepo, bookingRepo, workerRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	workerHandler := handler.NewWorkerHandler(workerService, bookingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	chatHandler := handler.NewChatHandler(chatService)

	authRequired := middleware.Auth(deps.JWTSecret)
	workersOnly := middleware.RBAC(domain.RoleWorker)
	customersOnly := middleware.RBAC(domain.RoleUser)
	anyRole := middleware.RBAC(domain.RoleUser, domain.RoleWorker)

	// --- Auth routes (public) ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/signup/resend-otp", authHandler.ResendOTP)
	e.POST("/verify-otp", authHandler.VerifyOTP)
	e.POST("/login", authHandler.Login)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/reset-password", authHandler.ResetPassword)
	// The old password authenticates this one, so no bearer token is needed.
	e.POST("/change-password", authHandler.ChangePassword)

	// --- Worker directory ---
	// Browsing the directory is open; publishing and earnings are not.
	e.GET("/workers", workerHandler.List)
	workers := e.Group("/workers", authRequired)
	workers.POST("/profile", workerHandler.UpsertProfile, workersOnly)
	workers.GET("/earnings", workerHandler.Earnings, workersOnly)

	// --- Bookings ---
	bookings := e.Group("/bookings", authRequired)
	bookings.POST("", bookingHandler.Create, customersOnly)
	bookings.GET("", bookingHandler.List, anyRole)
	bookings.GET("/availability", bookingHandler.Availability, anyRole)
	bookings.PATCH("/:id/status", bookingHandler.Transition, anyRole)

	// --- Chat ---
	chats := e.Group("/chats", authRequired, anyRole)
	chats.POST("/:counterpartId/messages", chatHandler.PostMessage)
	chats.GET("/:counterpartId/messages", chatHandler.ListMessages)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

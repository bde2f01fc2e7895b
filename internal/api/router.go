package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/logicem/callcenter-api/docs"
	"github.com/logicem/callcenter-api/internal/api/handler"
	"github.com/logicem/callcenter-api/internal/api/middleware"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// loginRateLimit caps sign-in attempts per client IP.
const loginRateLimit = rate.Limit(5)

// Dependencies carries everything the router needs to register routes.
type Dependencies struct {
	Sessions   ports.SessionService
	Users      ports.UserService
	Config     ports.ConfigService
	Operations ports.OperationService
	Campaigns  ports.CampaignService
	Calls      ports.CallService
	Tasks      ports.TaskService
	Vehicles   ports.VehicleRepository
	Dispatcher handler.EventDispatcher

	MongoDB *mongo.Database
	Redis   *redis.Client

	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("callcenter"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.JWTSecret, deps.TokenTTL)
	userHandler := handler.NewUserHandler(deps.Users)
	configHandler := handler.NewConfigHandler(deps.Config)
	operationHandler := handler.NewOperationHandler(deps.Operations)
	campaignHandler := handler.NewCampaignHandler(deps.Campaigns)
	callHandler := handler.NewCallHandler(deps.Calls)
	reportHandler := handler.NewReportHandler(deps.Campaigns, deps.Vehicles)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	eventHandler := handler.NewEventHandler(deps.Dispatcher)
	healthHandler := handler.NewHealthHandler(deps.MongoDB, deps.Redis)

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Auth routes ---
	loginLimiter := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(loginRateLimit))
	e.POST("/auth/login", authHandler.Login, loginLimiter)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret, deps.Sessions))

	v1.POST("/auth/logout", authHandler.Logout)
	v1.POST("/auth/password", authHandler.ChangePassword)
	v1.GET("/auth/session", authHandler.Session)
	v1.GET("/auth/menu", authHandler.Menu)

	// User administration is admin-only.
	users := v1.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/export", userHandler.Export)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// Lookup-list configuration is admin-only.
	cfg := v1.Group("/config", middleware.RBAC(domain.RoleAdmin))
	cfg.GET("", configHandler.Sections)
	cfg.GET("/:key", configHandler.Section)
	cfg.POST("/:key/items", configHandler.AddItem)
	cfg.PUT("/:key/items/:item_id", configHandler.UpdateItem)
	cfg.POST("/:key/items/:item_id/toggle", configHandler.ToggleItem)

	// Agents read operations and campaigns but cannot mutate them.
	v1.GET("/operations", operationHandler.List)
	opWrites := middleware.Mutates(domain.ResourceOperations)
	v1.POST("/operations", operationHandler.Create, opWrites)
	v1.PUT("/operations/:id", operationHandler.Update, opWrites)
	v1.POST("/operations/:id/inactivate", operationHandler.Inactivate, opWrites)

	campWrites := middleware.Mutates(domain.ResourceCampaigns)
	v1.GET("/campaigns", campaignHandler.List)
	v1.POST("/campaigns", campaignHandler.Create, campWrites)
	v1.GET("/campaigns/:id", campaignHandler.Get)
	v1.POST("/campaigns/:id/status", campaignHandler.ChangeStatus, campWrites)
	v1.GET("/campaigns/:id/stats", campaignHandler.Stats)
	v1.PUT("/vehicles/:id/status", campaignHandler.UpdateVehicleStatus, middleware.Mutates(domain.ResourceCalls))

	// Guided call flow; agents record results here.
	v1.GET("/calls/operations", callHandler.Operations)
	v1.GET("/calls/operations/:id/campaigns", callHandler.PendingCampaigns)
	v1.GET("/calls/campaigns/:id/vehicles", callHandler.UnmanagedVehicles)
	v1.GET("/calls/vehicles/:id/history", callHandler.VehicleHistory)
	v1.POST("/calls/results", callHandler.RecordResult, middleware.Mutates(domain.ResourceCalls))

	v1.GET("/reports/no-answer", reportHandler.NoAnswer)
	v1.GET("/reports/interests", reportHandler.Interests)

	// Task queue; data-update forms create tasks, admins and managers close
	// them.
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.POST("/tasks/:id/close", taskHandler.Close, middleware.Mutates(domain.ResourceTaskClose))

	// Dialer-integration event ingestion.
	v1.POST("/events", eventHandler.Receive)
	v1.POST("/events/batch", eventHandler.ReceiveBatch)

	return e
}

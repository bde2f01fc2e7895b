package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/logicem/callcenter-api/internal/api"
	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/service"
	"github.com/logicem/callcenter-api/internal/infrastructure/config"
	mongodb "github.com/logicem/callcenter-api/internal/infrastructure/db/mongo"
	redisdb "github.com/logicem/callcenter-api/internal/infrastructure/db/redis"
	"github.com/logicem/callcenter-api/internal/infrastructure/queue"
	"github.com/logicem/callcenter-api/pkg/logger"
)

const tokenTTL = 24 * time.Hour

// @title           Logicem Call Center API
// @version         1.0
// @description     Back-office for call-center campaign management.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongodb.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	// --- Repositories ---
	credRepo := mongodb.NewCredentialRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	configRepo := mongodb.NewConfigRepository(db)
	operationRepo := mongodb.NewOperationRepository(db)
	campaignRepo := mongodb.NewCampaignRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	callLogRepo := mongodb.NewCallLogRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"credentials": credRepo,
		"users":       userRepo,
		"operations":  operationRepo,
		"campaigns":   campaignRepo,
		"vehicles":    vehicleRepo,
		"call_logs":   callLogRepo,
		"tasks":       taskRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("ensure indexes failed")
		}
	}

	// --- Services ---
	sessions := service.NewSessionManager(credRepo, cfg.SessionTimeout(), logger.Component("sessions"))
	sessions.OnExpired(func(id domain.Identity) {
		metrics.SessionsExpiredTotal.Inc()
		metrics.ActiveSessions.Set(float64(sessions.Count()))
		log.Info().Str("user_id", id.ID).Str("email", id.Email).Msg("session expired")
	})
	sessions.Start()
	defer sessions.Close()

	userService := service.NewUserService(userRepo, credRepo, logger.Component("users"))
	configService := service.NewConfigService(configRepo, logger.Component("config"))
	operationService := service.NewOperationService(operationRepo, logger.Component("operations"))
	campaignService := service.NewCampaignService(campaignRepo, vehicleRepo, operationRepo, logger.Component("campaigns"))
	callService := service.NewCallService(operationRepo, campaignRepo, vehicleRepo, callLogRepo, logger.Component("calls"))

	dedup := redisdb.NewDedupChecker(rdb)
	eventService := service.NewCallEventService(vehicleRepo, callLogRepo, dedup, logger.Component("events"))
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	taskService := service.NewTaskService(taskRepo, logger.Component("tasks"))

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Sessions:   sessions,
		Users:      userService,
		Config:     configService,
		Operations: operationService,
		Campaigns:  campaignService,
		Calls:      callService,
		Tasks:      taskService,
		Vehicles:   vehicleRepo,
		Dispatcher: dispatcher,
		MongoDB:    db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   tokenTTL,
		Logger:     logger.Component("http"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

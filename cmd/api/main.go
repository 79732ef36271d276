package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
	instantUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/instant"
	liveUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
	paymentUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/payment"

	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/handler"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/routes"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/database"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/logger"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/metrics"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/pubsub"
	randAdapter "github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/rand"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/repository"
	timeProvider "github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/time"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	broadcaster := pubsub.NewRedisBroadcaster(redisClient, cfg.Redis.RoundTTL)

	var engineMetrics coreport.Metrics = coreport.NoopMetrics{}
	if cfg.Metrics.Enabled {
		engineMetrics = metrics.NewPrometheusMetrics()
	}

	accountRepo := repository.NewAccountRepository(dbManager.DB(), tp, appLogger)
	paymentRepo := repository.NewPaymentRepository(dbManager.DB(), tp, appLogger)
	uow := dbManager.CreateUnitOfWork()

	randSource := randAdapter.NewPooledRandSource()

	accountService := accountUseCase.NewUseCase(accountRepo, tp, appLogger, cfg.Game.StartingBalance)
	instantService := instantUseCase.NewUseCase(uow, accountService, randSource, tp, appLogger, engineMetrics)
	liveService := liveUseCase.NewService(uow, accountService, randSource, tp, appLogger, engineMetrics, broadcaster, liveUseCase.Config{
		SpinCycle:       cfg.Game.SpinCycle,
		SpinBetWindow:   cfg.Game.SpinBetWindow,
		FourColorWindow: cfg.Game.FourColorWindow,
	})
	paymentService := paymentUseCase.NewUseCase(uow, paymentRepo, accountService, tp, appLogger, engineMetrics)

	// Spin & Win scheduler runs for the life of the process
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go liveService.Run(schedulerCtx)

	accountHandler := handler.NewAccountHandler(accountService, instantService, appLogger)
	betHandler := handler.NewBetHandler(instantService, liveService, appLogger)
	roundHandler := handler.NewRoundHandler(liveService, appLogger)
	paymentHandler := handler.NewPaymentHandler(paymentService, appLogger)
	fourColorHandler := handler.NewFourColorHandler(liveService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, accountHandler, betHandler, roundHandler, paymentHandler, fourColorHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.StartMetricsServer(cfg.Metrics.Port, func(ctx context.Context) error {
			sqlDB, err := dbManager.DB().DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			appLogger.Error("Metrics server forced to shutdown", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := appLogger.Flush(); err != nil {
		log.Printf("Failed to flush logger: %v", err)
	}

	appLogger.Info("Server exited gracefully", nil)
}

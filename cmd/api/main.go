package main

// @title Bike Route Microservice API
// @version 1.0.0
// @description Бэкенд планирования поездок на городском велопрокате. Составляет пешие и велосипедные плечи во времяисчислимые поездки между произвольными координатами, круговые маршруты и маршруты на целевую дистанцию, ранжированные по категориям (приоритет велодорожек, кратчайший, быстрейший).
// @description
// @description Основные возможности:
// @description - Поездки от точки до точки с подбором станций у обоих концов
// @description - Маршруты через промежуточные точки
// @description - Круговые поездки и поездки на целевую дистанцию
// @description - Деталь маршрута по короткоживущему идентификатору

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/bikeroute-microservice/docs"
	"github.com/bikeroute-microservice/internal/config"
	httpDelivery "github.com/bikeroute-microservice/internal/delivery/http"
	"github.com/bikeroute-microservice/internal/delivery/http/handler"
	"github.com/bikeroute-microservice/internal/infrastructure/graphhopper"
	"github.com/bikeroute-microservice/internal/pkg/logger"
	"github.com/bikeroute-microservice/internal/repository/cache"
	"github.com/bikeroute-microservice/internal/repository/postgres"
	"github.com/bikeroute-microservice/internal/usecase"
	"github.com/bikeroute-microservice/internal/worker/routecache"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bike Route Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("graphhopper_url", cfg.GraphHopper.BaseURL),
	)

	// 3. Connect to PostgreSQL (station inventory)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	stationRepo := postgres.NewStationRepository(db)
	routeCacheRepo := cache.NewRouteCacheRepository(redisClient)
	routingClient := graphhopper.NewClient(&cfg.GraphHopper, log)

	log.Info("Repositories initialized")

	// 7. Background route persister (best-effort запись в кеш вне пути запроса)
	persistWorker := routecache.NewPersistWorker(
		routeCacheRepo,
		cfg.RouteCache.RouteTTL,
		cfg.RouteCache.QueueSize,
		log,
	)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go persistWorker.Start(workerCtx)

	// 8. Initialize Use Cases
	locatorUC := usecase.NewStationLocatorUseCase(stationRepo, log)

	optimizerUC := usecase.NewRouteOptimizerUseCase(
		routingClient,
		persistWorker,
		log,
		cfg.Circular.DistanceWindowRatio,
		cfg.Circular.MaxAttempts,
		cfg.Circular.TargetCandidates,
	)

	builderUC := usecase.NewRouteBuilderUseCase(routingClient, log)

	journeyUC := usecase.NewJourneyUseCase(
		locatorUC,
		routingClient,
		optimizerUC,
		builderUC,
		log,
	)

	routeDetailUC := usecase.NewRouteDetailUseCase(routeCacheRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	journeyHandler := handler.NewJourneyHandler(journeyUC, log)
	routeHandler := handler.NewRouteHandler(routeDetailUC, log)
	stationHandler := handler.NewStationHandler(locatorUC, log)

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		journeyHandler,
		routeHandler,
		stationHandler,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop persist worker (дописывает очередь перед выходом)
	if err := persistWorker.Stop(); err != nil {
		log.Error("Failed to stop persist worker", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

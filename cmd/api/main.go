package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pet-service/internal/api/http"
	"github.com/spec-kit/pet-service/internal/api/http/handlers"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/observability"
	"github.com/spec-kit/pet-service/internal/persistence"
	"github.com/spec-kit/pet-service/internal/repository"
	"github.com/spec-kit/pet-service/internal/service"
	"github.com/spec-kit/pet-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ownerRepo := repository.NewOwnerRepository(pool)
	petRepo := repository.NewPetRepository(pool)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), userRepo)
	dispatcher := events.NewInMemoryDispatcher()

	statsService := service.NewStatisticsService(service.StatisticsDependencies{
		OwnerRepo: ownerRepo,
		PetRepo:   petRepo,
		Cache:     redis,
		TTL:       cfg.Cache.StatsTTL(),
		Logger:    logger,
	})

	var relay service.EventRelay
	if cfg.Kafka.Enabled() {
		publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer publisher.Close() //nolint:errcheck
		relay = publisher
		logger.Info("kafka relay enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	notifications := service.NewNotificationService(logger, statsService, relay)
	notificationWorker := worker.NewNotificationWorker(notifications, logger, 0)
	worker.StartNotificationWorker(ctx, dispatcher, notificationWorker)
	defer notificationWorker.Stop()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		OwnerRepo:  ownerRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		OwnerRepo:  ownerRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ownerService := service.NewOwnerService(service.OwnerDependencies{
		OwnerRepo:  ownerRepo,
		PetRepo:    petRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	petService := service.NewPetService(service.PetDependencies{
		PetRepo:    petRepo,
		OwnerRepo:  ownerRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.AdminEmail); err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		logger.Info("admin account ensured", zap.String("username", cfg.Auth.AdminUsername))
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:      handlers.NewUsersHandler(authService, userService),
		Owners:     handlers.NewOwnersHandler(ownerService, petService.Now),
		Pets:       handlers.NewPetsHandler(petService),
		Statistics: handlers.NewStatisticsHandler(statsService),
		Gate:       auth.NewGate(tokens, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

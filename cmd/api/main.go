package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/carrental/internal/delivery/http"
	"github.com/frontandrew/carrental/internal/messaging/kafka"
	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/config"
	"github.com/frontandrew/carrental/internal/pkg/database"
	"github.com/frontandrew/carrental/internal/pkg/hash"
	"github.com/frontandrew/carrental/internal/pkg/jwt"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/redis"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/frontandrew/carrental/internal/repository/cached"
	"github.com/frontandrew/carrental/internal/repository/postgres"
	"github.com/frontandrew/carrental/internal/usecase/auth"
	"github.com/frontandrew/carrental/internal/usecase/booking"
	"github.com/frontandrew/carrental/internal/usecase/history"
	"github.com/frontandrew/carrental/internal/usecase/location"
	"github.com/frontandrew/carrental/internal/usecase/search"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting car rental API server", map[string]interface{}{
		"address": cfg.Server.Address(),
	})

	// =========================================================================
	// Подключение к PostgreSQL и миграции
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err,
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, database.MigrateUp); err != nil {
			log.Fatal("Failed to apply migrations", map[string]interface{}{
				"error": err,
			})
		}
		log.Info("Migrations applied")
	}

	// =========================================================================
	// Repositories
	// =========================================================================

	personRepo := postgres.NewPersonRepository(db)
	carRepo := postgres.NewCarRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	bookingTransactor := postgres.NewBookingTransactor(db)

	var locationRepo repository.LocationRepository = postgres.NewLocationRepository(db)

	// Redis нужен только для справочника стран и городов; без него читаем из БД
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis is not available, location cache disabled", map[string]interface{}{
				"error": err,
			})
		} else {
			defer redisClient.Close()

			// После миграций справочник в БД мог измениться
			if cfg.Database.AutoMigrate {
				if err := redisClient.DeleteByPrefix(ctx, cached.KeyPrefix); err != nil {
					log.Warn("Failed to reset location cache", map[string]interface{}{
						"error": err,
					})
				}
			}
			locationRepo = cached.NewLocationRepository(locationRepo, redisClient, cfg.Redis.LocationCacheTTL, log)
			log.Info("Location cache enabled", map[string]interface{}{
				"ttl": cfg.Redis.LocationCacheTTL.String(),
			})
		}
	}

	// =========================================================================
	// Kafka и метрики
	// =========================================================================

	var publisher booking.EventPublisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic, log)
		if err != nil {
			log.Fatal("Failed to create kafka producer", map[string]interface{}{
				"error":   err,
				"brokers": cfg.Kafka.Brokers,
			})
		}
		defer producer.Close()
		publisher = producer
		log.Info("Kafka producer initialized", map[string]interface{}{
			"topic": cfg.Kafka.OrdersTopic,
		})
	}

	appMetrics := metrics.New()

	// =========================================================================
	// Use case services и handlers
	// =========================================================================

	tokenService := jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	v := validator.New()

	authService := auth.NewService(personRepo, hash.NewHasher(hash.DefaultCost), tokenService, log)
	searchService := search.NewService(carRepo, orderRepo, appMetrics, log)
	bookingService := booking.NewService(personRepo, carRepo, bookingTransactor, publisher, appMetrics, log)
	historyService := history.NewService(personRepo, orderRepo, log)
	locationService := location.NewService(locationRepo)

	router := deliveryHTTP.NewRouter(
		deliveryHTTP.NewAuthHandler(authService, v, log),
		deliveryHTTP.NewCarHandler(searchService, v, log, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize),
		deliveryHTTP.NewOrderHandler(bookingService, historyService, v, log),
		deliveryHTTP.NewLocationHandler(locationService, log),
		tokenService,
		db,
		appMetrics,
		cfg,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера и graceful shutdown
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", map[string]interface{}{
				"error": err,
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err,
			})
			_ = srv.Close()
		}

		log.Info("Server stopped gracefully")
	}
}

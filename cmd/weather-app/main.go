package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-app-core/internal/api/http"
	"github.com/i474232898/weather-app-core/internal/config"
	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/notify"
	"github.com/i474232898/weather-app-core/internal/scheduler"
	"github.com/i474232898/weather-app-core/internal/store"
	"github.com/i474232898/weather-app-core/internal/weather"
	"github.com/i474232898/weather-app-core/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		_ = log.Init(false)
		log.Fatalf("failed to load config: %v", err)
	}

	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer log.Sync()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Provider with circuit breaker, optionally rate limited.
	var fetcher weather.Fetcher = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL)
	if cfg.RateLimitRPS > 0 {
		fetcher = providers.NewRateLimited(fetcher, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	service := weather.NewService(fetcher)

	// Profiles: MongoDB when configured, otherwise an empty in-memory store.
	var profiles store.ProfileReader = store.NewMemoryStore()
	if cfg.MongoURI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, err := store.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect profile store: %v", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoStore.Close(closeCtx); err != nil {
				log.Warnf("error closing profile store: %v", err)
			}
		}()
		profiles = mongoStore
	} else {
		log.Infof("MONGO_URI not set; using in-memory profile store")
	}

	// Scheduler that periodically notifies users about their main city.
	sched := scheduler.New(cfg.NotifyUsers, cfg.NotifyInterval, service, profiles, notify.LogDispatcher{})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-app-core",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-app-core",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, profiles)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}

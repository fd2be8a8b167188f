package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"reelpick/internal/config"
	"reelpick/internal/database"
	"reelpick/internal/handler"
	"reelpick/internal/repository"
	"reelpick/internal/service"
	"reelpick/internal/tmdb"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	recRepo := repository.NewRecommendationRepository(db)
	catalog := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	userSvc := service.NewUserService(userRepo, rdb)
	recSvc := service.NewRecommendationService(recRepo, userRepo, userSvc, catalog, rdb, cfg.DiscoverPages)
	userHandler := handler.NewUserHandler(userSvc)
	recHandler := handler.NewRecommendationHandler(recSvc)

	// Load swagger spec
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger spec not found, swagger UI will be unavailable", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "reelpick",
		ServerHeader: "reelpick",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger
	if swaggerYAML != nil {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/health", recHandler.Health)

	api := app.Group("/api/v1")
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/:id", userHandler.GetUser)
	api.Get("/users/:id/preferences", userHandler.GetPreference)
	api.Put("/users/:id/preferences", userHandler.SetPreference)
	api.Post("/users/:id/interactions", userHandler.RecordInteraction)
	api.Get("/users/:id/interactions", userHandler.GetInteractions)
	api.Get("/users/:id/recommendations", recHandler.GetRecommendations)
	api.Get("/genres", recHandler.GetGenres)
	api.Get("/rules", recHandler.GetRules)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("reelpick starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down reelpick")
	_ = app.Shutdown()
}

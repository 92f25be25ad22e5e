package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"ordermgmt/internal/config"
	"ordermgmt/internal/database"
	"ordermgmt/internal/handlers"
	"ordermgmt/internal/middleware"
	"ordermgmt/internal/models"
	"ordermgmt/internal/repositories"
	"ordermgmt/internal/services"
)

func main() {
	cfg, err := config.LoadProductService()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg.Logger).With().Str("app", "product-service").Logger()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, logger)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	app.Use(fiberlogger.New())

	// Health stays open; everything else requires the fixed service
	// credential.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1", middleware.BasicAuthRequired(cfg.Auth))
	productHandler.RegisterRoutes(apiV1)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting product service")
		if err := app.Listen(cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down product service")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("product service stopped")
}

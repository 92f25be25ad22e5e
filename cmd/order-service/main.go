package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"ordermgmt/internal/clients"
	"ordermgmt/internal/config"
	"ordermgmt/internal/database"
	"ordermgmt/internal/handlers"
	"ordermgmt/internal/models"
	"ordermgmt/internal/repositories"
	"ordermgmt/internal/services"
	"ordermgmt/pkg/rabbitmq"
)

func main() {
	cfg, err := config.LoadOrderService()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg.Logger).With().Str("app", "order-service").Logger()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// The event broker is optional: without a configured URL the service
	// runs with publication disabled.
	var publisher services.OrderEventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	productClient := clients.NewProductClient(clients.Config{
		BaseURL:        cfg.ProductService.BaseURL,
		Username:       cfg.ProductService.Username,
		Password:       cfg.ProductService.Password,
		ConnectTimeout: cfg.ProductService.ConnectTimeout,
		ReadTimeout:    cfg.ProductService.ReadTimeout,
	}, logger)

	orderRepo := repositories.NewGORMOrderRepository(db)
	orderService := services.NewOrderService(orderRepo, productClient, publisher, logger)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	orderHandler.RegisterRoutes(apiV1)

	if mqClient != nil {
		err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			logger.Info().Uint64("delivery_tag", msg.DeliveryTag).RawJSON("event", msg.Body).Msg("order event received")
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to start order event consumer")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting order service")
		if err := app.Listen(cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down order service")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("order service stopped")
}

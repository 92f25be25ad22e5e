package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ProductServiceConfig holds everything the product service needs.
type ProductServiceConfig struct {
	Port        string
	DatabaseDSN string
	Logger      LoggerConfig
	Auth        BasicAuthConfig
}

// OrderServiceConfig holds everything the order service needs,
// including the connection details for the remote product catalog.
type OrderServiceConfig struct {
	Port           string
	DatabaseDSN    string
	Logger         LoggerConfig
	ProductService ProductLookupConfig
	RabbitMQURL    string
}

// BasicAuthConfig is the fixed service credential protecting the
// product service endpoints.
type BasicAuthConfig struct {
	Username string
	Password string
}

// ProductLookupConfig configures the outbound product-lookup client.
type ProductLookupConfig struct {
	BaseURL        string
	Username       string
	Password       string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

func setCommonDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()
}

// LoadProductService loads the product service configuration from the
// environment, applying defaults.
func LoadProductService() (*ProductServiceConfig, error) {
	viper.SetDefault("PRODUCT_SERVICE_PORT", ":9081")
	viper.SetDefault("PRODUCT_DB_DSN", "file:product.db?cache=shared")
	viper.SetDefault("PRODUCT_AUTH_USERNAME", "admin")
	viper.SetDefault("PRODUCT_AUTH_PASSWORD", "password")
	setCommonDefaults()

	cfg := &ProductServiceConfig{
		Port:        viper.GetString("PRODUCT_SERVICE_PORT"),
		DatabaseDSN: viper.GetString("PRODUCT_DB_DSN"),
		Logger: LoggerConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Auth: BasicAuthConfig{
			Username: viper.GetString("PRODUCT_AUTH_USERNAME"),
			Password: viper.GetString("PRODUCT_AUTH_PASSWORD"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("product service configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrderService loads the order service configuration from the
// environment, applying defaults.
func LoadOrderService() (*OrderServiceConfig, error) {
	viper.SetDefault("ORDER_SERVICE_PORT", ":9082")
	viper.SetDefault("ORDER_DB_DSN", "file:order.db?cache=shared")
	viper.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:9081/api/v1")
	viper.SetDefault("PRODUCT_SERVICE_USERNAME", "admin")
	viper.SetDefault("PRODUCT_SERVICE_PASSWORD", "password")
	viper.SetDefault("PRODUCT_SERVICE_CONNECT_TIMEOUT", "2s")
	viper.SetDefault("PRODUCT_SERVICE_READ_TIMEOUT", "5s")
	viper.SetDefault("RABBITMQ_URL", "")
	setCommonDefaults()

	cfg := &OrderServiceConfig{
		Port:        viper.GetString("ORDER_SERVICE_PORT"),
		DatabaseDSN: viper.GetString("ORDER_DB_DSN"),
		Logger: LoggerConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		ProductService: ProductLookupConfig{
			BaseURL:        viper.GetString("PRODUCT_SERVICE_URL"),
			Username:       viper.GetString("PRODUCT_SERVICE_USERNAME"),
			Password:       viper.GetString("PRODUCT_SERVICE_PASSWORD"),
			ConnectTimeout: viper.GetDuration("PRODUCT_SERVICE_CONNECT_TIMEOUT"),
			ReadTimeout:    viper.GetDuration("PRODUCT_SERVICE_READ_TIMEOUT"),
		},
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("order service configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the product service configuration.
func (c *ProductServiceConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("service port is required")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("basic auth credentials are required")
	}
	return c.Logger.Validate()
}

// Validate validates the order service configuration.
func (c *OrderServiceConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("service port is required")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.ProductService.BaseURL == "" {
		return fmt.Errorf("product service base URL is required")
	}
	if c.ProductService.ConnectTimeout <= 0 || c.ProductService.ReadTimeout <= 0 {
		return fmt.Errorf("product service timeouts must be positive")
	}
	return c.Logger.Validate()
}

// Validate validates the logger configuration.
func (c *LoggerConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
	}
	return nil
}

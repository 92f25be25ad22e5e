package services

import (
	"errors"
	"fmt"

	"ordermgmt/internal/models"
	"ordermgmt/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductBySKU retrieves a single product by its SKU.
func (s *ProductService) GetProductBySKU(sku string) (*models.Product, error) {
	return s.repo.GetBySKU(sku)
}

// CreateProduct validates the product and persists it. A product whose
// SKU collides with an existing record fails with ErrDuplicateSKU before
// any write is attempted.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	existing, err := s.repo.GetBySKU(product.SKU)
	if err != nil && !errors.Is(err, models.ErrProductNotFound) {
		return fmt.Errorf("failed to check SKU %s: %w", product.SKU, err)
	}
	if existing != nil {
		s.logger.Warn().Str("sku", product.SKU).Msg("duplicate SKU rejected")
		return fmt.Errorf("sku %s: %w", product.SKU, models.ErrDuplicateSKU)
	}

	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("product created")
	return nil
}

// UpdateProduct overwrites name, description, price and quantity of an
// existing product. The SKU is immutable after creation and timestamps
// are server-managed.
func (s *ProductService) UpdateProduct(id string, product *models.Product) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Quantity = product.Quantity

	if err := s.validateProduct(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return existing, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) validateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return &models.ValidationError{Reason: err}
	}
	// The validator has no tag for decimal comparisons, so the price
	// bound is checked directly.
	if product.Price.LessThanOrEqual(decimal.Zero) {
		return &models.ValidationError{Reason: errors.New("price must be greater than zero")}
	}
	return nil
}

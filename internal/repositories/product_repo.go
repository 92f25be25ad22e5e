package repositories

import (
	"ordermgmt/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups that find nothing return models.ErrProductNotFound.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

package repositories

import (
	"ordermgmt/internal/models"
)

// OrderRepository defines the interface for order data access. An order
// and its items form one aggregate: Create persists them as a single
// unit and Delete cascades to items. Lookups that find nothing return
// models.ErrOrderNotFound.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	FindByCustomerEmail(email string) ([]models.Order, error)
	FindByStatus(status models.OrderStatus) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
}

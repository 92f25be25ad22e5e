package repositories

import (
	"errors"
	"fmt"

	"ordermgmt/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, models.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// FindByCustomerEmail retrieves all orders placed by a customer.
func (r *GORMOrderRepository) FindByCustomerEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("customer_email = ?", email).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders for customer %s: %w", email, err)
	}
	return orders, nil
}

// FindByStatus retrieves all orders in a given status.
func (r *GORMOrderRepository) FindByStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders with status %s: %w", status, err)
	}
	return orders, nil
}

// Create persists the order and its items in a single transaction. The
// aggregate is either fully stored or not stored at all.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update updates the order row. Items are left untouched: updates never
// modify the item list or the stored totals. An explicit UPDATE is issued
// instead of Save, which would upsert a phantom row on a missing ID.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("*").Omit("id", "created_at", "Items").
		Updates(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", order.ID, models.ErrOrderNotFound)
	}
	return nil
}

// Delete removes an order and cascades to its items, leaving no
// orphaned rows behind.
func (r *GORMOrderRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %s: %w", id, models.ErrOrderNotFound)
		}
		// SQLite runs without foreign-key enforcement by default, so the
		// item rows are removed explicitly rather than relying on the
		// ON DELETE CASCADE constraint alone.
		return tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

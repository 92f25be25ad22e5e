package repositories

import (
	"fmt"
	"sync"
	"time"

	"ordermgmt/internal/models"

	"github.com/google/uuid"
)

// InMemoryOrderRepository is an in-memory implementation of
// OrderRepository. Orders are stored whole, items included, so the
// aggregate semantics match the database-backed repository.
type InMemoryOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

func copyOrder(order models.Order) models.Order {
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

// GetAll returns all orders.
func (r *InMemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, copyOrder(order))
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *InMemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrOrderNotFound)
	}
	found := copyOrder(order)
	return &found, nil
}

// FindByCustomerEmail returns all orders placed by a customer.
func (r *InMemoryOrderRepository) FindByCustomerEmail(email string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.CustomerEmail == email {
			orders = append(orders, copyOrder(order))
		}
	}
	return orders, nil
}

// FindByStatus returns all orders in a given status.
func (r *InMemoryOrderRepository) FindByStatus(status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.Status == status {
			orders = append(orders, copyOrder(order))
		}
	}
	return orders, nil
}

// Create adds a new order together with its items.
func (r *InMemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

// Update replaces the stored order row, keeping the previously stored
// items and total.
func (r *InMemoryOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", order.ID, models.ErrOrderNotFound)
	}
	updated := copyOrder(*order)
	updated.Items = existing.Items
	updated.TotalPrice = existing.TotalPrice
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.orders[order.ID] = updated
	return nil
}

// Delete removes an order and its items.
func (r *InMemoryOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, models.ErrOrderNotFound)
	}
	delete(r.orders, id)
	return nil
}

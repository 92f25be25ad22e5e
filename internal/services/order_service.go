package services

import (
	"context"
	"fmt"

	"ordermgmt/internal/clients"
	"ordermgmt/internal/models"
	"ordermgmt/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderEventPublisher publishes order lifecycle events. Implemented by
// pkg/rabbitmq; a nil publisher disables event publication.
type OrderEventPublisher interface {
	PublishOrderCreated(order *models.Order) error
}

// OrderService handles the order-creation workflow and the order query
// and mutation paths.
type OrderService struct {
	orderRepo     repositories.OrderRepository
	productLookup clients.ProductLookup
	publisher     OrderEventPublisher
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productLookup clients.ProductLookup,
	publisher OrderEventPublisher,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productLookup: productLookup,
		publisher:     publisher,
		validate:      validator.New(),
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByCustomerEmail retrieves all orders placed by a customer.
func (s *OrderService) GetOrdersByCustomerEmail(email string) ([]models.Order, error) {
	return s.orderRepo.FindByCustomerEmail(email)
}

// GetOrdersByStatus retrieves all orders in a given status.
func (s *OrderService) GetOrdersByStatus(status models.OrderStatus) ([]models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, &models.ValidationError{Reason: fmt.Errorf("invalid order status: %s", status)}
	}
	return s.orderRepo.FindByStatus(status)
}

// CreateOrder runs the order-creation workflow:
//
//  1. the draft must carry at least one item, checked before any remote
//     call is made;
//  2. the draft is validated structurally;
//  3. every item's product is validated against the remote catalog, in
//     item order; the first failure aborts the whole creation;
//  4. item back-references and line totals are set, then the order
//     total is derived;
//  5. the aggregate is persisted as one unit.
//
// Nothing is persisted on any failure. Validation performs reads only,
// so no compensation is needed when persistence fails afterwards.
func (s *OrderService) CreateOrder(ctx context.Context, draft models.Order) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("create order: %w", models.ErrEmptyOrder)
	}

	if err := s.validateDraft(&draft); err != nil {
		return nil, err
	}

	for _, item := range draft.Items {
		if _, err := s.productLookup.ValidateExists(ctx, item.ProductID); err != nil {
			s.logger.Warn().Str("product_id", item.ProductID).Err(err).Msg("product validation failed, aborting order")
			return nil, err
		}
	}

	order := &models.Order{
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		ShippingAddress: draft.ShippingAddress,
		Status:          models.StatusPending,
	}
	for _, item := range draft.Items {
		order.AddItem(models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist order")
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}

	s.publishCreated(order)

	s.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Str("total", order.TotalPrice.String()).
		Msg("order created")
	return order, nil
}

// UpdateOrder overwrites customer name, email, shipping address and
// status of an existing order. The item list and totals are never
// touched by an update, and no product re-validation happens.
func (s *OrderService) UpdateOrder(id string, fields models.Order) (*models.Order, error) {
	if !models.ValidStatus(fields.Status) {
		return nil, &models.ValidationError{Reason: fmt.Errorf("invalid order status: %s", fields.Status)}
	}

	existing, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.CustomerName = fields.CustomerName
	existing.CustomerEmail = fields.CustomerEmail
	existing.ShippingAddress = fields.ShippingAddress
	existing.Status = fields.Status

	if err := s.validate.Struct(existing); err != nil {
		return nil, &models.ValidationError{Reason: err}
	}
	if err := s.orderRepo.Update(existing); err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", id).Str("status", string(existing.Status)).Msg("order updated")
	return existing, nil
}

// DeleteOrder deletes an order and its items.
func (s *OrderService) DeleteOrder(id string) error {
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

func (s *OrderService) validateDraft(draft *models.Order) error {
	if err := s.validate.Struct(draft); err != nil {
		return &models.ValidationError{Reason: err}
	}
	for _, item := range draft.Items {
		if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return &models.ValidationError{
				Reason: fmt.Errorf("item %s: unit price must be greater than zero", item.ProductID),
			}
		}
	}
	return nil
}

// publishCreated sends the order.created event. Publication is best
// effort: a broker failure is logged and never fails the creation.
func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderCreated(order); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order created event")
	}
}

package services_test

import (
	"context"
	"fmt"
	"testing"

	"ordermgmt/internal/models"
	"ordermgmt/internal/repositories"
	"ordermgmt/internal/services"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerEmail(email string) ([]models.Order, error) {
	args := m.Called(email)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProductLookup is a mock implementation of clients.ProductLookup
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) ValidateExists(ctx context.Context, productID string) (*models.ProductSnapshot, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductSnapshot), args.Error(1)
}

// MockPublisher is a mock implementation of services.OrderEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func snapshotFor(id string) *models.ProductSnapshot {
	return &models.ProductSnapshot{
		ID:          id,
		Name:        "Product " + id,
		Description: "A product used in tests",
		Price:       decimal.RequireFromString("10.00"),
		Quantity:    100,
		SKU:         "SKU-" + id,
	}
}

func validDraft() models.Order {
	return models.Order{
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		ShippingAddress: "123 Main Street, Springfield",
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.RequireFromString("100.00")},
			{ProductID: "prod-2", Quantity: 3, UnitPrice: decimal.RequireFromString("50.00")},
		},
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(mockRepo, mockLookup, nil, zerolog.Nop())

	mockLookup.On("ValidateExists", "prod-1").Return(snapshotFor("prod-1"), nil).Once()
	mockLookup.On("ValidateExists", "prod-2").Return(snapshotFor("prod-2"), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.CreateOrder(context.Background(), validDraft())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, order.Items[1].TotalPrice.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("350.00")))
	mockRepo.AssertExpectations(t)
	mockLookup.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(mockRepo, mockLookup, nil, zerolog.Nop())

	draft := validDraft()
	draft.Items = nil

	order, err := service.CreateOrder(context.Background(), draft)

	assert.ErrorIs(t, err, models.ErrEmptyOrder)
	assert.Nil(t, order)
	// The empty-order check runs before any remote call.
	mockLookup.AssertNotCalled(t, "ValidateExists", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_CreateOrder_ProductUnavailable(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(mockRepo, mockLookup, nil, zerolog.Nop())

	mockLookup.On("ValidateExists", "prod-1").Return(snapshotFor("prod-1"), nil).Once()
	mockLookup.On("ValidateExists", "prod-2").
		Return(nil, fmt.Errorf("product prod-2: %w", models.ErrProductUnavailable)).Once()

	order, err := service.CreateOrder(context.Background(), validDraft())

	assert.ErrorIs(t, err, models.ErrProductUnavailable)
	assert.Nil(t, order)
	// One item validated before the failure, yet nothing is persisted.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockLookup.AssertExpectations(t)
}

func TestOrderService_CreateOrder_InvalidDraft(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(mockRepo, mockLookup, nil, zerolog.Nop())

	draft := validDraft()
	draft.CustomerEmail = "not-an-email"

	order, err := service.CreateOrder(context.Background(), draft)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Nil(t, order)
	mockLookup.AssertNotCalled(t, "ValidateExists", mock.Anything)
}

func TestOrderService_CreateOrder_PersistenceFailed(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(mockRepo, mockLookup, nil, zerolog.Nop())

	mockLookup.On("ValidateExists", mock.Anything).Return(snapshotFor("any"), nil)
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(fmt.Errorf("disk full")).Once()

	order, err := service.CreateOrder(context.Background(), validDraft())

	assert.ErrorIs(t, err, models.ErrPersistenceFailed)
	assert.Nil(t, order)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishesEvent(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	mockPublisher := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockLookup, mockPublisher, zerolog.Nop())

	mockLookup.On("ValidateExists", mock.Anything).Return(snapshotFor("any"), nil)
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderCreated", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	_, err := service.CreateOrder(context.Background(), validDraft())

	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureTolerated(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockLookup := new(MockProductLookup)
	mockPublisher := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockLookup, mockPublisher, zerolog.Nop())

	mockLookup.On("ValidateExists", mock.Anything).Return(snapshotFor("any"), nil)
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderCreated", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	order, err := service.CreateOrder(context.Background(), validDraft())

	// Event publication is best effort and never fails the creation.
	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestOrderService_CreateOrder_RoundTrip(t *testing.T) {
	repo := repositories.NewInMemoryOrderRepository()
	mockLookup := new(MockProductLookup)
	service := services.NewOrderService(repo, mockLookup, nil, zerolog.Nop())

	mockLookup.On("ValidateExists", "prod-a").Return(snapshotFor("prod-a"), nil).Once()

	draft := validDraft()
	draft.Items = []models.OrderItem{
		{ProductID: "prod-a", Quantity: 1, UnitPrice: decimal.RequireFromString("999.99")},
	}

	created, err := service.CreateOrder(context.Background(), draft)
	assert.NoError(t, err)
	assert.True(t, created.TotalPrice.Equal(decimal.RequireFromString("999.99")))

	fetched, err := service.GetOrderByID(created.ID)
	assert.NoError(t, err)
	assert.Len(t, fetched.Items, 1)
	assert.True(t, fetched.TotalPrice.Equal(decimal.RequireFromString("999.99")))
}

func TestOrderService_UpdateOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockProductLookup), nil, zerolog.Nop())

	existing := &models.Order{
		ID:              "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		ShippingAddress: "123 Main Street, Springfield",
		Status:          models.StatusPending,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00"), TotalPrice: decimal.RequireFromString("10.00")},
		},
		TotalPrice: decimal.RequireFromString("10.00"),
	}

	mockRepo.On("GetByID", existing.ID).Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := service.UpdateOrder(existing.ID, models.Order{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "456 Oak Avenue, Shelbyville",
		Status:          models.StatusShipped,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.CustomerName)
	assert.Equal(t, models.StatusShipped, updated.Status)
	// Items and totals stay untouched by updates.
	assert.Len(t, updated.Items, 1)
	assert.True(t, updated.TotalPrice.Equal(decimal.RequireFromString("10.00")))
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_InvalidStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockProductLookup), nil, zerolog.Nop())

	_, err := service.UpdateOrder("order-1", models.Order{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "456 Oak Avenue, Shelbyville",
		Status:          "SOMEWHERE",
	})

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_UpdateOrder_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockProductLookup), nil, zerolog.Nop())

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("order 99: %w", models.ErrOrderNotFound)).Once()

	_, err := service.UpdateOrder("99", models.Order{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "456 Oak Avenue, Shelbyville",
		Status:          models.StatusShipped,
	})

	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetOrdersByStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockProductLookup), nil, zerolog.Nop())

	_, err := service.GetOrdersByStatus("NOT-A-STATUS")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockRepo.AssertNotCalled(t, "FindByStatus", mock.Anything)
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockProductLookup), nil, zerolog.Nop())

	mockRepo.On("Delete", "99").Return(fmt.Errorf("order 99: %w", models.ErrOrderNotFound)).Once()

	err := service.DeleteOrder("99")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	mockRepo.AssertExpectations(t)
}

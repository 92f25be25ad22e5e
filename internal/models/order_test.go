package models_test

import (
	"testing"

	"ordermgmt/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_ComputeTotal(t *testing.T) {
	item := models.OrderItem{
		ProductID: "prod-1",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("50.00"),
	}

	item.ComputeTotal()
	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("150.00")))

	// A poisoned input total is overwritten, never trusted.
	item.TotalPrice = decimal.RequireFromString("1.00")
	item.ComputeTotal()
	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("150.00")))
}

func TestOrder_AddItem_ComputesTotals(t *testing.T) {
	order := models.Order{ID: "order-1"}

	order.AddItem(models.OrderItem{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.RequireFromString("100.00")})
	order.AddItem(models.OrderItem{ProductID: "prod-2", Quantity: 3, UnitPrice: decimal.RequireFromString("50.00")})

	assert.Len(t, order.Items, 2)
	assert.Equal(t, "order-1", order.Items[0].OrderID)
	assert.Equal(t, "order-1", order.Items[1].OrderID)
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, order.Items[1].TotalPrice.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("350.00")))
}

func TestOrder_ComputeTotalPrice_EmptyOrder(t *testing.T) {
	order := models.Order{}
	order.ComputeTotalPrice()
	assert.True(t, order.TotalPrice.Equal(decimal.Zero))
}

func TestOrder_ComputeTotalPrice_Idempotent(t *testing.T) {
	order := models.Order{}
	order.AddItem(models.OrderItem{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("999.99")})

	order.ComputeTotalPrice()
	first := order.TotalPrice
	order.ComputeTotalPrice()

	assert.True(t, order.TotalPrice.Equal(first))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("999.99")))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusShipped,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		assert.True(t, models.ValidStatus(s), string(s))
	}

	assert.False(t, models.ValidStatus("PROCESSING"))
	assert.False(t, models.ValidStatus(""))
	assert.False(t, models.ValidStatus("pending"))
}

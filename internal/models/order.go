package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the legal states of an order. No transition
// rules are enforced: any legal value may be written by an update.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line item owned exclusively by one Order. It has no
// lifecycle of its own: it is created, persisted and deleted with its
// order. UnitPrice is a snapshot taken at order-creation time and is
// never re-read from the catalog.
type OrderItem struct {
	ID         string          `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string          `json:"-" gorm:"type:varchar(36);index;not null"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(36);not null" validate:"required"`
	Quantity   int             `json:"quantity" gorm:"not null" validate:"required,gte=1"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
}

// ComputeTotal recomputes the line total from quantity and unit price.
// The stored total is never trusted from input.
func (i *OrderItem) ComputeTotal() {
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root: the order row plus its owned items,
// persisted and deleted as one unit.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerName    string          `json:"customer_name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	CustomerEmail   string          `json:"customer_email" gorm:"type:varchar(100);not null" validate:"required,email"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:varchar(255);not null" validate:"required,min=10,max=255"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" validate:"dive"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ComputeTotalPrice recomputes the order total as the sum of its items'
// line totals. Zero for an empty item list. Idempotent.
func (o *Order) ComputeTotalPrice() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].TotalPrice)
	}
	o.TotalPrice = total
}

// AddItem binds an item to this order, recomputes its line total and
// refreshes the order total.
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	item.ComputeTotal()
	o.Items = append(o.Items, item)
	o.ComputeTotalPrice()
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string          `json:"description" gorm:"type:varchar(500);not null" validate:"required,min=10,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null" validate:"gte=0"`
	SKU         string          `json:"sku" gorm:"column:sku;type:varchar(50);uniqueIndex;not null" validate:"required,max=50"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ProductSnapshot is the remote catalog's view of a product, as returned
// by the product service's GET /products/{id} endpoint. It is read once
// during order creation and never refreshed.
type ProductSnapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SKU         string          `json:"sku"`
}

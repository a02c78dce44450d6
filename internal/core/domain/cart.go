package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds a user's pending line items prior to order placement.
// Exactly one cart exists per user, enforced by the storage layer.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem snapshots the product's price at add time. UnitPrice is never
// re-synced when the catalog price changes later.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal

	// Joined from the product row on reads.
	ProductName  string
	ProductSKU   string
	ProductStock int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartSummary is derived on every read and never persisted.
type CartSummary struct {
	Items     []CartItem
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

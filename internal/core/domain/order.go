package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is an immutable, priced snapshot of a cart plus shipping and payment
// selection. Totals are recomputed server-side at creation, never taken from
// the client.
type Order struct {
	ID                string
	OrderNumber       string
	UserID            string
	Status            OrderStatus
	PaymentStatus     PaymentStatus
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	ShippingCost      decimal.Decimal
	DiscountAmount    decimal.Decimal
	Total             decimal.Decimal
	Currency          string
	ShippingAddressID string
	BillingAddressID  string
	ShippingMethod    string
	Notes             string
	IdempotencyKey    string
	TrackingNumber    string
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []OrderItem
}

// OrderItem snapshots product name, SKU and price at order creation time,
// decoupled from later catalog changes.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int
	Price       decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Payment records a settled card charge against an order. Cash-on-delivery
// orders carry no payment row.
type Payment struct {
	ID            string
	OrderID       string
	UserID        string
	Method        string
	Provider      string
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	Status        string
	CreatedAt     time.Time
}

package port

import (
	"context"
	"errors"

	"github.com/acruxa/storefront/internal/core/domain"
)

// Sentinel errors adapters translate store-specific failures into.
var (
	ErrNotFound                = errors.New("record not found")
	ErrDuplicateOrderNumber    = errors.New("duplicate order number")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
	ErrDuplicateProduct        = errors.New("duplicate product slug or sku")
	ErrInsufficientStock       = errors.New("insufficient stock")
)

// ProductQuery carries catalog filters explicitly instead of chained query
// composition. Search matches name or SKU. IncludeInactive is reserved for
// the backoffice; storefront queries leave it false.
type ProductQuery struct {
	CategorySlug    string
	Search          string
	FeaturedOnly    bool
	IncludeInactive bool
	Page            int
	PerPage         int
}

// OrderQuery is the backoffice order listing filter.
type OrderQuery struct {
	Status  domain.OrderStatus // empty means all
	Page    int
	PerPage int
}

type ProductRepository interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, int, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// Backoffice catalog management. Slug and SKU are unique; violations
	// surface as ErrDuplicateProduct.
	InsertProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	SetProductActive(ctx context.Context, id string, active bool) error
}

type CartRepository interface {
	// GetOrCreateCart is idempotent; the store enforces one cart per user.
	GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error)

	// ListItems returns cart lines joined with live product name, SKU and stock.
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)

	GetItem(ctx context.Context, itemID string) (*domain.CartItem, error)
	FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	InsertItem(ctx context.Context, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteItems(ctx context.Context, cartID string) error
}

type OrderRepository interface {
	// CreateOrder persists the order, its item snapshots, the guarded stock
	// decrement and an optional payment row in a single transaction.
	CreateOrder(ctx context.Context, order domain.Order, payment *domain.Payment) error

	GetOrderByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// Backoffice operations.
	ListOrders(ctx context.Context, q OrderQuery) ([]domain.Order, int, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error
	SetTrackingNumber(ctx context.Context, orderID, trackingNumber string) error
}

type AddressRepository interface {
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	GetAddress(ctx context.Context, id string) (*domain.Address, error)

	// InsertAddress and UpdateAddress clear every other default for the user in
	// the same transaction when the record carries IsDefault.
	InsertAddress(ctx context.Context, a domain.Address) error
	UpdateAddress(ctx context.Context, a domain.Address) error
	DeleteAddress(ctx context.Context, id, userID string) error
	SetDefaultAddress(ctx context.Context, id, userID string) error
}

type PaymentMethodRepository interface {
	ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error)
	InsertPaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, id, userID string) error
	SetDefaultPaymentMethod(ctx context.Context, id, userID string) error
}

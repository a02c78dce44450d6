package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acruxa/storefront/internal/core/checkout"
	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/core/pricing"
	"github.com/acruxa/storefront/internal/port"
)

const (
	orderNumberPrefix   = "ACR"
	orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Retries on an order-number uniqueness violation. Collisions are rare but
	// the suffix is only four characters.
	maxOrderNumberAttempts = 3
)

type OrderService struct {
	carts     port.CartRepository
	orders    port.OrderRepository
	cache     port.CacheRepository
	publisher port.FulfillmentPublisher
}

func NewOrderService(carts port.CartRepository, orders port.OrderRepository, cache port.CacheRepository, publisher port.FulfillmentPublisher) *OrderService {
	return &OrderService{carts: carts, orders: orders, cache: cache, publisher: publisher}
}

type PlaceOrderInput struct {
	IdempotencyKey    string
	ShippingAddressID string
	BillingAddressID  string
	PaymentType       checkout.PaymentType
	PaymentMethodID   string
	Notes             string
}

// PlaceOrder turns the user's live cart into an immutable order. Totals are
// recomputed server-side, the insert is one transaction covering order,
// item snapshots, stock decrement and payment row, and the client-supplied
// idempotency key makes retries return the original order instead of a
// duplicate.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*domain.Order, error) {
	if in.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key required", ErrValidation)
	}
	if in.ShippingAddressID == "" {
		return nil, fmt.Errorf("%w: shipping address required", ErrValidation)
	}
	if in.BillingAddressID == "" {
		in.BillingAddressID = in.ShippingAddressID
	}
	if in.PaymentType != checkout.PaymentCashOnDelivery && in.PaymentType != checkout.PaymentCreditCard {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrValidation, in.PaymentType)
	}
	if in.PaymentType == checkout.PaymentCreditCard && in.PaymentMethodID == "" {
		return nil, fmt.Errorf("%w: payment method required for card payment", ErrValidation)
	}

	idemKey := fmt.Sprintf("order:idem:%s:%s", userID, in.IdempotencyKey)
	ok, err := s.cache.SetIdempotency(ctx, idemKey)
	if err != nil {
		return nil, fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return s.existingOrder(ctx, userID, in.IdempotencyKey)
	}

	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, s.release(ctx, idemKey, fmt.Errorf("get cart: %w", err))
	}
	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, s.release(ctx, idemKey, fmt.Errorf("list cart items: %w", err))
	}
	if len(items) == 0 {
		return nil, s.release(ctx, idemKey, ErrEmptyCart)
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	totals := pricing.Summarize(lines)

	now := time.Now()
	order := domain.Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		Status:            domain.OrderStatusPending,
		PaymentStatus:     domain.PaymentStatusPending,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		ShippingCost:      totals.ShippingCost,
		DiscountAmount:    totals.DiscountAmount,
		Total:             totals.Total,
		Currency:          "USD",
		ShippingAddressID: in.ShippingAddressID,
		BillingAddressID:  in.BillingAddressID,
		ShippingMethod:    "delivery",
		Notes:             in.Notes,
		IdempotencyKey:    in.IdempotencyKey,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, it := range items {
		line := pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
			Tax:         pricing.LineTax(line),
			Total:       pricing.LineTotal(line),
		})
	}

	var payment *domain.Payment
	if in.PaymentType == checkout.PaymentCreditCard {
		order.PaymentStatus = domain.PaymentStatusPaid
		payment = &domain.Payment{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			UserID:    userID,
			Method:    string(checkout.PaymentCreditCard),
			Provider:  "manual",
			Amount:    order.Total,
			Currency:  order.Currency,
			Status:    "completed",
			CreatedAt: now,
		}
	}

	var createErr error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber()
		if payment != nil {
			payment.TransactionID = "TXN-" + order.OrderNumber
		}
		createErr = s.orders.CreateOrder(ctx, order, payment)
		if !errors.Is(createErr, port.ErrDuplicateOrderNumber) {
			break
		}
	}

	if createErr != nil {
		if errors.Is(createErr, port.ErrDuplicateIdempotencyKey) {
			return s.existingOrder(ctx, userID, in.IdempotencyKey)
		}
		if errors.Is(createErr, port.ErrInsufficientStock) {
			return nil, s.release(ctx, idemKey, ErrInsufficientStock)
		}
		return nil, s.release(ctx, idemKey, fmt.Errorf("create order: %w", createErr))
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			log.Printf("order %s: fulfillment publish failed: %v", order.OrderNumber, err)
		}
	}

	if err := s.carts.DeleteItems(ctx, cart.ID); err != nil {
		log.Printf("order %s: failed to clear cart: %v", order.OrderNumber, err)
	}

	return &order, nil
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error) {
	order, err := s.orders.GetOrderByNumber(ctx, userID, orderNumber)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// existingOrder resolves a replayed idempotency key to the order it produced.
func (s *OrderService) existingOrder(ctx context.Context, userID, key string) (*domain.Order, error) {
	order, err := s.orders.GetOrderByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			// Token taken but no order yet: a concurrent attempt is in flight.
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("lookup order by idempotency key: %w", err)
	}
	return order, nil
}

// release frees the idempotency token after a failed attempt so the client
// may retry with the same key.
func (s *OrderService) release(ctx context.Context, idemKey string, cause error) error {
	if err := s.cache.DeleteIdempotency(ctx, idemKey); err != nil {
		log.Printf("failed to release idempotency key %s: %v", idemKey, err)
	}
	return cause
}

func generateOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, ts, suffix)
}

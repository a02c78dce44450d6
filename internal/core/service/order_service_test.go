package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/acruxa/storefront/internal/core/checkout"
	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

func seedCart(t *testing.T, carts *mockCartRepo, userID string) {
	t.Helper()
	ctx := context.Background()
	cart, err := carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	items := []domain.CartItem{
		{ID: "item-1", CartID: cart.ID, ProductID: "prod-1", Quantity: 2,
			UnitPrice: d("12.50"), ProductName: "Ceramic Mug", ProductSKU: "MUG-01"},
		{ID: "item-2", CartID: cart.ID, ProductID: "prod-2", Quantity: 1,
			UnitPrice: d("4.99"), ProductName: "Notebook", ProductSKU: "NB-01"},
	}
	for _, it := range items {
		if err := carts.InsertItem(ctx, it); err != nil {
			t.Fatalf("insert item: %v", err)
		}
	}
}

func placeInput(key string) PlaceOrderInput {
	return PlaceOrderInput{
		IdempotencyKey:    key,
		ShippingAddressID: "addr-1",
		PaymentType:       checkout.PaymentCashOnDelivery,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	cache := newMockCacheRepo()
	pub := &mockPublisher{}
	svc := NewOrderService(carts, orders, cache, pub)

	seedCart(t, carts, "user-1")

	order, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	// Summed line totals equal the order subtotal.
	sum := d("0")
	for _, it := range order.Items {
		sum = sum.Add(it.Total)
	}
	if !sum.Equal(order.Subtotal) {
		t.Errorf("expected item totals %s to equal subtotal %s", sum, order.Subtotal)
	}
	if !order.Subtotal.Equal(d("29.99")) {
		t.Errorf("expected subtotal 29.99, got %s", order.Subtotal)
	}
	if !order.Tax.Equal(d("3.60")) {
		t.Errorf("expected tax 3.60, got %s", order.Tax)
	}
	if !order.Total.Equal(d("33.59")) {
		t.Errorf("expected total 33.59, got %s", order.Total)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected pending payment status for COD, got %s", order.PaymentStatus)
	}

	// Snapshots carry product name and SKU.
	for _, it := range order.Items {
		if it.ProductName == "" || it.ProductSKU == "" {
			t.Errorf("expected product snapshot on item %s", it.ID)
		}
	}

	// Cart cleared and fulfillment notified.
	remaining, _ := carts.ListItems(context.Background(), "cart-user-1")
	if len(remaining) != 0 {
		t.Errorf("expected cart cleared, %d items remain", len(remaining))
	}
	if len(pub.published) != 1 {
		t.Errorf("expected 1 fulfillment event, got %d", len(pub.published))
	}
}

func TestPlaceOrder_CreditCardMarksPaid(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	svc := NewOrderService(carts, orders, newMockCacheRepo(), &mockPublisher{})

	seedCart(t, carts, "user-1")

	in := placeInput("key-1")
	in.PaymentType = checkout.PaymentCreditCard
	in.PaymentMethodID = "pm-1"

	order, err := svc.PlaceOrder(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected paid, got %s", order.PaymentStatus)
	}
	if len(orders.payments) != 1 {
		t.Fatalf("expected 1 payment row, got %d", len(orders.payments))
	}
	p := orders.payments[0]
	if p.TransactionID != "TXN-"+order.OrderNumber {
		t.Errorf("expected transaction id TXN-%s, got %s", order.OrderNumber, p.TransactionID)
	}
	if !p.Amount.Equal(order.Total) {
		t.Errorf("expected payment amount %s, got %s", order.Total, p.Amount)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	carts := newMockCartRepo()
	cache := newMockCacheRepo()
	svc := NewOrderService(carts, newMockOrderRepo(), cache, &mockPublisher{})

	_, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// Token released: a later attempt with the same key is not treated as a
	// duplicate.
	seedCart(t, carts, "user-1")
	if _, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1")); err != nil {
		t.Errorf("expected retry with same key to succeed, got %v", err)
	}
}

func TestPlaceOrder_DuplicateKeyReturnsExistingOrder(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	svc := NewOrderService(carts, orders, newMockCacheRepo(), &mockPublisher{})

	seedCart(t, carts, "user-1")

	first, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if err != nil {
		t.Fatalf("first place failed: %v", err)
	}

	second, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected replay to return order %s, got %s", first.ID, second.ID)
	}
	if len(orders.orders) != 1 {
		t.Errorf("expected exactly 1 stored order, got %d", len(orders.orders))
	}
}

func TestPlaceOrder_FailedInsertLeavesNoOrder(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	orders.failCreateWith = fmt.Errorf("item insert failed")
	cache := newMockCacheRepo()
	svc := NewOrderService(carts, orders, cache, &mockPublisher{})

	seedCart(t, carts, "user-1")

	_, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if err == nil {
		t.Fatal("expected error")
	}

	if len(orders.orders) != 0 {
		t.Errorf("expected zero orders after failure, got %d", len(orders.orders))
	}

	// Cart must be untouched and the idempotency token released.
	remaining, _ := carts.ListItems(context.Background(), "cart-user-1")
	if len(remaining) != 2 {
		t.Errorf("expected cart intact, got %d items", len(remaining))
	}
	orders.failCreateWith = nil
	if _, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1")); err != nil {
		t.Errorf("expected retry to succeed, got %v", err)
	}
}

func TestPlaceOrder_RetriesOrderNumberCollision(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	orders.duplicateNumbers = 2
	svc := NewOrderService(carts, orders, newMockCacheRepo(), &mockPublisher{})

	seedCart(t, carts, "user-1")

	if _, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1")); err != nil {
		t.Fatalf("expected collision retries to succeed, got %v", err)
	}
	if orders.createAttempts != 3 {
		t.Errorf("expected 3 create attempts, got %d", orders.createAttempts)
	}
}

func TestPlaceOrder_InsufficientStockAtCommit(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	orders.failCreateWith = port.ErrInsufficientStock
	svc := NewOrderService(carts, orders, newMockCacheRepo(), &mockPublisher{})

	seedCart(t, carts, "user-1")

	_, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("key-1"))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc := NewOrderService(newMockCartRepo(), newMockOrderRepo(), newMockCacheRepo(), &mockPublisher{})
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx, "user-1", PlaceOrderInput{ShippingAddressID: "addr-1", PaymentType: checkout.PaymentCashOnDelivery}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for missing idempotency key, got %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, "user-1", PlaceOrderInput{IdempotencyKey: "k", PaymentType: checkout.PaymentCashOnDelivery}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for missing address, got %v", err)
	}
	in := placeInput("k")
	in.PaymentType = checkout.PaymentCreditCard
	if _, err := svc.PlaceOrder(ctx, "user-1", in); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for card without method, got %v", err)
	}
}

func TestPlaceOrder_ConcurrentSameKey(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	svc := NewOrderService(carts, orders, newMockCacheRepo(), &mockPublisher{})

	seedCart(t, carts, "user-1")

	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.PlaceOrder(context.Background(), "user-1", placeInput("shared-key"))
			if err == nil && order != nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	if len(orders.orders) != 1 {
		t.Errorf("expected exactly 1 stored order, got %d", len(orders.orders))
	}
	if created.Load() < 1 {
		t.Error("expected at least one caller to receive the order")
	}
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ACR-[0-9A-Z]+-[0-9A-Z]{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := generateOrderNumber()
		if !pattern.MatchString(n) {
			t.Fatalf("unexpected order number format: %s", n)
		}
		seen[n] = true
	}
	if len(seen) < 2 {
		t.Error("expected random suffixes to vary")
	}
}

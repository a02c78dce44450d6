package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *sql.DB, id string, stock int) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO products (id, name, slug, sku, price, stock, is_active, is_featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, 12.50, ?, 1, 0, NOW(), NOW())
		ON DUPLICATE KEY UPDATE stock = ?, price = 12.50`,
		id, "Test Product "+id, "test-product-"+id, "SKU-"+id, stock, stock)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func testOrder(productID string, quantity int) domain.Order {
	now := time.Now()
	orderID := uuid.New().String()
	price := decimal.RequireFromString("12.50")
	qty := decimal.NewFromInt(int64(quantity))

	return domain.Order{
		ID:                orderID,
		OrderNumber:       "ACR-TEST-" + orderID[:4],
		UserID:            "test-user",
		Status:            domain.OrderStatusPending,
		PaymentStatus:     domain.PaymentStatusPending,
		Subtotal:          price.Mul(qty),
		Tax:               price.Mul(qty).Mul(decimal.RequireFromString("0.12")).Round(2),
		ShippingCost:      decimal.Zero,
		DiscountAmount:    decimal.Zero,
		Total:             price.Mul(qty).Mul(decimal.RequireFromString("1.12")).Round(2),
		Currency:          "USD",
		ShippingAddressID: "test-addr",
		BillingAddressID:  "test-addr",
		ShippingMethod:    "delivery",
		IdempotencyKey:    uuid.New().String(),
		CreatedAt:         now,
		UpdatedAt:         now,
		Items: []domain.OrderItem{{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   productID,
			ProductName: "Test Product",
			ProductSKU:  "SKU-TEST",
			Quantity:    quantity,
			Price:       price,
			Tax:         price.Mul(decimal.RequireFromString("0.12")).Round(2),
			Total:       price.Mul(qty),
		}},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLOrderAdapter(db)

	productID := "order-test-product"
	seedProduct(t, db, productID, 10)
	db.ExecContext(ctx, `DELETE FROM order_items WHERE product_id = ?`, productID)
	db.ExecContext(ctx, `DELETE FROM orders WHERE user_id = 'test-user'`)

	order := testOrder(productID, 2)
	if err := adapter.CreateOrder(ctx, order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := adapter.GetOrderByNumber(ctx, "test-user", order.OrderNumber)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(got.Items))
	}
	if !got.Subtotal.Equal(order.Subtotal) {
		t.Errorf("expected subtotal %s, got %s", order.Subtotal, got.Subtotal)
	}

	var stock int
	db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, productID).Scan(&stock)
	if stock != 8 {
		t.Errorf("expected stock 8 after decrement, got %d", stock)
	}
}

func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLOrderAdapter(db)

	productID := "order-test-lowstock"
	seedProduct(t, db, productID, 1)

	order := testOrder(productID, 5)
	err := adapter.CreateOrder(ctx, order, nil)
	if !errors.Is(err, port.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// No orphaned order header survives the rollback.
	var count int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE id = ?`, order.ID).Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 order rows, got %d", count)
	}

	var stock int
	db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, productID).Scan(&stock)
	if stock != 1 {
		t.Errorf("expected stock untouched at 1, got %d", stock)
	}
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLOrderAdapter(db)

	err := adapter.UpdateOrderStatus(context.Background(), "no-such-order", domain.OrderStatusShipped)
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = adapter.SetTrackingNumber(context.Background(), "no-such-order", "TRACK-1")
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateOrder_DuplicateOrderNumber(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLOrderAdapter(db)

	productID := "order-test-dup"
	seedProduct(t, db, productID, 10)

	first := testOrder(productID, 1)
	if err := adapter.CreateOrder(ctx, first, nil); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := testOrder(productID, 1)
	second.OrderNumber = first.OrderNumber
	err := adapter.CreateOrder(ctx, second, nil)
	if !errors.Is(err, port.ErrDuplicateOrderNumber) {
		t.Errorf("expected ErrDuplicateOrderNumber, got %v", err)
	}
}

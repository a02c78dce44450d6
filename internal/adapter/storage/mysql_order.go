package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

type MySQLOrderAdapter struct {
	db *sql.DB
}

func NewMySQLOrderAdapter(db *sql.DB) *MySQLOrderAdapter {
	return &MySQLOrderAdapter{db: db}
}

// CreateOrder writes the order header, its item snapshots, the guarded stock
// decrements and the optional payment row in one transaction. A decrement
// matching zero rows means another checkout took the remaining stock; the
// whole order rolls back.
func (m *MySQLOrderAdapter) CreateOrder(ctx context.Context, order domain.Order, payment *domain.Payment) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, user_id, status, payment_status,
			subtotal, tax, shipping_cost, discount_amount, total, currency,
			shipping_address_id, billing_address_id, shipping_method, notes,
			idempotency_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.OrderNumber, order.UserID, order.Status, order.PaymentStatus,
		order.Subtotal, order.Tax, order.ShippingCost, order.DiscountAmount, order.Total,
		order.Currency, order.ShippingAddressID, order.BillingAddressID,
		order.ShippingMethod, order.Notes, order.IdempotencyKey,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", translateDuplicate(err))
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name,
				product_sku, quantity, price, tax, total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.ProductSKU, item.Quantity, item.Price, item.Tax, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?, updated_at = NOW()
			WHERE id = ? AND stock >= ?`,
			item.Quantity, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if rows == 0 {
			return port.ErrInsufficientStock
		}
	}

	if payment != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (id, order_id, user_id, payment_method,
				payment_provider, transaction_id, amount, currency, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			payment.ID, payment.OrderID, payment.UserID, payment.Method,
			payment.Provider, payment.TransactionID, payment.Amount,
			payment.Currency, payment.Status, payment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}

	return tx.Commit()
}

const orderColumns = `id, order_number, user_id, status, payment_status,
	subtotal, tax, shipping_cost, discount_amount, total, currency,
	shipping_address_id, billing_address_id, shipping_method, notes,
	idempotency_key, tracking_number, shipped_at, delivered_at, cancelled_at,
	created_at, updated_at`

func (m *MySQLOrderAdapter) GetOrderByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error) {
	return m.loadOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ? AND user_id = ?`,
		orderNumber, userID)
}

func (m *MySQLOrderAdapter) GetOrderByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	return m.loadOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE idempotency_key = ? AND user_id = ?`,
		key, userID)
}

func (m *MySQLOrderAdapter) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.loadOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
}

func (m *MySQLOrderAdapter) loadOrder(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	order, err := scanOrder(m.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	items, err := m.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (m *MySQLOrderAdapter) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders, err := m.collectOrders(ctx, rows)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *MySQLOrderAdapter) ListOrders(ctx context.Context, q port.OrderQuery) ([]domain.Order, int, error) {
	where := "1 = 1"
	args := []any{}
	if q.Status != "" {
		where = "status = ?"
		args = append(args, string(q.Status))
	}

	var total int
	if err := m.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
	rows, err := m.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE "+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders, err := m.collectOrders(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (m *MySQLOrderAdapter) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	stamp := ""
	switch status {
	case domain.OrderStatusShipped:
		stamp = ", shipped_at = NOW()"
	case domain.OrderStatusDelivered:
		stamp = ", delivered_at = NOW()"
	case domain.OrderStatusCancelled:
		stamp = ", cancelled_at = NOW()"
	}

	result, err := m.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = NOW()"+stamp+" WHERE id = ?",
		string(status), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLOrderAdapter) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	result, err := m.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = ?, updated_at = NOW() WHERE id = ?",
		string(status), orderID)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLOrderAdapter) SetTrackingNumber(ctx context.Context, orderID, trackingNumber string) error {
	result, err := m.db.ExecContext(ctx,
		"UPDATE orders SET tracking_number = ?, updated_at = NOW() WHERE id = ?",
		trackingNumber, orderID)
	if err != nil {
		return fmt.Errorf("set tracking number: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set tracking number: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLOrderAdapter) collectOrders(ctx context.Context, rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := m.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (m *MySQLOrderAdapter) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_sku, quantity, price, tax, total
		FROM order_items WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.ProductSKU, &it.Quantity, &it.Price, &it.Tax, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(r rowScanner) (*domain.Order, error) {
	var o domain.Order
	var notes, tracking sql.NullString
	var shippedAt, deliveredAt, cancelledAt sql.NullTime

	err := r.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.DiscountAmount, &o.Total, &o.Currency,
		&o.ShippingAddressID, &o.BillingAddressID, &o.ShippingMethod, &notes,
		&o.IdempotencyKey, &tracking, &shippedAt, &deliveredAt, &cancelledAt,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	o.Notes = notes.String
	o.TrackingNumber = tracking.String
	if shippedAt.Valid {
		o.ShippedAt = &shippedAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	if cancelledAt.Valid {
		o.CancelledAt = &cancelledAt.Time
	}
	return &o, nil
}

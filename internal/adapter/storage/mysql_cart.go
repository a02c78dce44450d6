package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

type MySQLCartAdapter struct {
	db *sql.DB
}

func NewMySQLCartAdapter(db *sql.DB) *MySQLCartAdapter {
	return &MySQLCartAdapter{db: db}
}

// GetOrCreateCart relies on the UNIQUE KEY on carts.user_id: a concurrent
// create loses the insert race and re-selects the winner's row.
func (m *MySQLCartAdapter) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := m.getCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), userID, now, now,
	)
	if err != nil && !isDuplicate(err) {
		return nil, fmt.Errorf("insert cart: %w", err)
	}

	return m.getCart(ctx, userID)
}

func (m *MySQLCartAdapter) getCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := m.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts WHERE user_id = ?`, userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	return &c, nil
}

const cartItemColumns = `ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
	p.name, p.sku, p.stock, ci.created_at, ci.updated_at`

func (m *MySQLCartAdapter) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ProductName, &it.ProductSKU, &it.ProductStock, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (m *MySQLCartAdapter) GetItem(ctx context.Context, itemID string) (*domain.CartItem, error) {
	return m.scanItemRow(m.db.QueryRowContext(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = ?`, itemID))
}

func (m *MySQLCartAdapter) FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	return m.scanItemRow(m.db.QueryRowContext(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ? AND ci.product_id = ?`, cartID, productID))
}

func (m *MySQLCartAdapter) scanItemRow(row *sql.Row) (*domain.CartItem, error) {
	var it domain.CartItem
	err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice,
		&it.ProductName, &it.ProductSKU, &it.ProductStock, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cart item: %w", err)
	}
	return &it, nil
}

func (m *MySQLCartAdapter) InsertItem(ctx context.Context, item domain.CartItem) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (m *MySQLCartAdapter) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = ?, updated_at = NOW() WHERE id = ?`,
		quantity, itemID,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLCartAdapter) DeleteItem(ctx context.Context, itemID string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (m *MySQLCartAdapter) DeleteItems(ctx context.Context, cartID string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

type MySQLProductAdapter struct {
	db *sql.DB
}

func NewMySQLProductAdapter(db *sql.DB) *MySQLProductAdapter {
	return &MySQLProductAdapter{db: db}
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.sku, p.price, p.stock,
	p.is_active, p.is_featured, p.created_at, p.updated_at`

func (m *MySQLProductAdapter) ListProducts(ctx context.Context, q port.ProductQuery) ([]domain.Product, int, error) {
	where := "1 = 1"
	join := ""
	args := []any{}

	if !q.IncludeInactive {
		where += " AND p.is_active = 1"
	}
	if q.CategorySlug != "" {
		join = " JOIN categories c ON c.id = p.category_id"
		where += " AND c.slug = ?"
		args = append(args, q.CategorySlug)
	}
	if q.Search != "" {
		where += " AND (p.name LIKE ? OR p.sku LIKE ?)"
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}
	if q.FeaturedOnly {
		where += " AND p.is_featured = 1"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products p" + join + " WHERE " + where
	if err := m.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	listQuery := "SELECT " + productColumns + " FROM products p" + join +
		" WHERE " + where + " ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)

	rows, err := m.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (m *MySQLProductAdapter) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := m.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products p WHERE p.id = ?", id)
	return scanProductRow(row)
}

func (m *MySQLProductAdapter) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	row := m.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products p WHERE p.slug = ? AND p.is_active = 1", slug)
	return scanProductRow(row)
}

func (m *MySQLProductAdapter) InsertProduct(ctx context.Context, p domain.Product) error {
	var categoryID any
	if p.CategoryID != "" {
		categoryID = p.CategoryID
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, category_id, name, slug, sku, price, stock,
			is_active, is_featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, categoryID, p.Name, p.Slug, p.SKU, p.Price, p.Stock,
		p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", translateDuplicate(err))
	}
	return nil
}

func (m *MySQLProductAdapter) UpdateProduct(ctx context.Context, p domain.Product) error {
	var categoryID any
	if p.CategoryID != "" {
		categoryID = p.CategoryID
	}
	result, err := m.db.ExecContext(ctx, `
		UPDATE products SET category_id = ?, name = ?, slug = ?, sku = ?,
			price = ?, stock = ?, is_active = ?, is_featured = ?, updated_at = ?
		WHERE id = ?`,
		categoryID, p.Name, p.Slug, p.SKU, p.Price, p.Stock,
		p.IsActive, p.IsFeatured, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", translateDuplicate(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLProductAdapter) SetProductActive(ctx context.Context, id string, active bool) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products SET is_active = ?, updated_at = NOW() WHERE id = ?`,
		active, id)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLProductAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, slug, sort_order, is_active
		FROM categories WHERE is_active = 1 ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (*domain.Product, error) {
	var p domain.Product
	var categoryID sql.NullString
	err := r.Scan(&p.ID, &categoryID, &p.Name, &p.Slug, &p.SKU, &p.Price, &p.Stock,
		&p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.CategoryID = categoryID.String
	return &p, nil
}

func scanProductRow(row *sql.Row) (*domain.Product, error) {
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

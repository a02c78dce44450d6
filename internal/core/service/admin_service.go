package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

// AdminService is the backoffice surface: order review and catalog
// management. Role checks happen at the HTTP layer; everything here assumes
// an already-authorized caller.
type AdminService struct {
	orders   port.OrderRepository
	products port.ProductRepository
}

func NewAdminService(orders port.OrderRepository, products port.ProductRepository) *AdminService {
	return &AdminService{orders: orders, products: products}
}

func (s *AdminService) ListOrders(ctx context.Context, q port.OrderQuery) ([]domain.Order, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPageSize
	}
	if q.PerPage > maxPageSize {
		q.PerPage = maxPageSize
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	orders, total, err := s.orders.ListOrders(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func (s *AdminService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. The storage layer
// stamps shipped_at, delivered_at or cancelled_at for the matching statuses.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (s *AdminService) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.orders.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

func (s *AdminService) SetTrackingNumber(ctx context.Context, orderID, trackingNumber string) error {
	if trackingNumber == "" {
		return fmt.Errorf("%w: tracking number required", ErrValidation)
	}
	if err := s.orders.SetTrackingNumber(ctx, orderID, trackingNumber); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set tracking number: %w", err)
	}
	return nil
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name       string
	Slug       string
	SKU        string
	CategoryID string
	Price      decimal.Decimal
	Stock      int
	IsFeatured bool
}

func (in ProductInput) validate() error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name required", ErrValidation)
	case in.Slug == "":
		return fmt.Errorf("%w: slug required", ErrValidation)
	case in.SKU == "":
		return fmt.Errorf("%w: sku required", ErrValidation)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	return nil
}

// ListProducts lists the full catalog, inactive rows included, optionally
// filtered by a name/SKU search term.
func (s *AdminService) ListProducts(ctx context.Context, q port.ProductQuery) ([]domain.Product, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPageSize
	}
	if q.PerPage > maxPageSize {
		q.PerPage = maxPageSize
	}
	q.IncludeInactive = true

	products, total, err := s.products.ListProducts(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (s *AdminService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := domain.Product{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Slug:       in.Slug,
		SKU:        in.SKU,
		Price:      in.Price,
		Stock:      in.Stock,
		IsActive:   true,
		IsFeatured: in.IsFeatured,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.products.InsertProduct(ctx, product); err != nil {
		if errors.Is(err, port.ErrDuplicateProduct) {
			return nil, ErrDuplicateProduct
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	current.CategoryID = in.CategoryID
	current.Name = in.Name
	current.Slug = in.Slug
	current.SKU = in.SKU
	current.Price = in.Price
	current.Stock = in.Stock
	current.IsFeatured = in.IsFeatured
	current.UpdatedAt = time.Now()

	if err := s.products.UpdateProduct(ctx, *current); err != nil {
		switch {
		case errors.Is(err, port.ErrDuplicateProduct):
			return nil, ErrDuplicateProduct
		case errors.Is(err, port.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return current, nil
}

func (s *AdminService) SetProductActive(ctx context.Context, id string, active bool) error {
	if err := s.products.SetProductActive(ctx, id, active); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// DeleteProduct deactivates the product rather than removing the row, so
// order item history keeps a valid reference.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	return s.SetProductActive(ctx, id, false)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	featuredPageSize = 4
)

// CatalogService serves read-only product and category views of active
// catalog rows.
type CatalogService struct {
	products port.ProductRepository
}

func NewCatalogService(products port.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) ListProducts(ctx context.Context, q port.ProductQuery) ([]domain.Product, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPageSize
	}
	if q.PerPage > maxPageSize {
		q.PerPage = maxPageSize
	}
	// The storefront never sees inactive rows regardless of the caller.
	q.IncludeInactive = false

	products, total, err := s.products.ListProducts(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	products, _, err := s.products.ListProducts(ctx, port.ProductQuery{
		FeaturedOnly: true,
		Page:         1,
		PerPage:      featuredPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/core/pricing"
	"github.com/acruxa/storefront/internal/port"
)

// CartService merges persisted cart lines with live product data and keeps
// quantities within available stock. Stock checks here are advisory
// (check-then-act); the order transaction is the enforcement point.
type CartService struct {
	products port.ProductRepository
	carts    port.CartRepository
}

func NewCartService(products port.ProductRepository, carts port.CartRepository) *CartService {
	return &CartService{products: products, carts: carts}
}

// GetSummary recomputes the cart view on every read; nothing is cached.
func (s *CartService) GetSummary(ctx context.Context, userID string) (*domain.CartSummary, error) {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	lines := make([]pricing.Line, 0, len(items))
	count := 0
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		count += it.Quantity
	}

	totals := pricing.Summarize(lines)

	return &domain.CartSummary{
		Items:     items,
		ItemCount: count,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
	}, nil
}

// AddItem puts quantity units of a product into the user's cart, snapshotting
// the current price on new lines. Existing lines are incremented instead.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get product: %w", err)
	}

	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}

	existing, err := s.carts.FindItem(ctx, cart.ID, productID)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("find cart item: %w", err)
	}

	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if newQuantity > product.Stock {
			return ErrInsufficientStock
		}
		if err := s.carts.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}
		return nil
	}

	if quantity > product.Stock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := domain.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.carts.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity overwrites a line's quantity after re-checking live stock.
// It never partially applies.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	product, err := s.products.GetProductByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get product: %w", err)
	}

	if quantity > product.Stock {
		return ErrInsufficientStock
	}

	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if err := s.carts.DeleteItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// ownedItem resolves an item and hides other users' items behind ErrNotFound.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error) {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}

	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if item.CartID != cart.ID {
		return nil, ErrNotFound
	}
	return item, nil
}

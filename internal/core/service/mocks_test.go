package service

import (
	"context"
	"strings"
	"sync"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

// Mock ProductRepository
type mockProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*domain.Product)}
}

func (m *mockProductRepo) put(p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := p
	m.products[p.ID] = &cp
}

func (m *mockProductRepo) ListProducts(ctx context.Context, q port.ProductQuery) ([]domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if q.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if !q.IncludeInactive && !p.IsActive {
			continue
		}
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.SKU), term) {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (m *mockProductRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (m *mockProductRepo) InsertProduct(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.Slug == p.Slug || existing.SKU == p.SKU {
			return port.ErrDuplicateProduct
		}
	}
	cp := p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return port.ErrNotFound
	}
	for id, existing := range m.products {
		if id != p.ID && (existing.Slug == p.Slug || existing.SKU == p.SKU) {
			return port.ErrDuplicateProduct
		}
	}
	cp := p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) SetProductActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return port.ErrNotFound
	}
	p.IsActive = active
	return nil
}

// Mock CartRepository
type mockCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart     // keyed by user id
	items map[string]*domain.CartItem // keyed by item id
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		carts: make(map[string]*domain.Cart),
		items: make(map[string]*domain.CartItem),
	}
}

func (m *mockCartRepo) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[userID]; ok {
		cp := *c
		return &cp, nil
	}
	c := &domain.Cart{ID: "cart-" + userID, UserID: userID}
	m.carts[userID] = c
	cp := *c
	return &cp, nil
}

func (m *mockCartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CartItem
	for _, it := range m.items {
		if it.CartID == cartID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockCartRepo) GetItem(ctx context.Context, itemID string) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return nil, port.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *mockCartRepo) FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.CartID == cartID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (m *mockCartRepo) InsertItem(ctx context.Context, item domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockCartRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return port.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (m *mockCartRepo) DeleteItem(ctx context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemID)
	return nil
}

func (m *mockCartRepo) DeleteItems(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, it := range m.items {
		if it.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}

// Mock OrderRepository
type mockOrderRepo struct {
	mu       sync.Mutex
	orders   []domain.Order
	payments []domain.Payment

	failCreateWith   error // returned by CreateOrder when set
	duplicateNumbers int   // number of leading attempts rejected as colliding
	createAttempts   int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{}
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order domain.Order, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createAttempts++
	if m.duplicateNumbers > 0 {
		m.duplicateNumbers--
		return port.ErrDuplicateOrderNumber
	}
	if m.failCreateWith != nil {
		return m.failCreateWith
	}
	for _, o := range m.orders {
		if o.UserID == order.UserID && o.IdempotencyKey == order.IdempotencyKey {
			return port.ErrDuplicateIdempotencyKey
		}
	}

	m.orders = append(m.orders, order)
	if payment != nil {
		m.payments = append(m.payments, *payment)
	}
	return nil
}

func (m *mockOrderRepo) GetOrderByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.UserID == userID && o.OrderNumber == orderNumber {
			cp := o
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (m *mockOrderRepo) GetOrderByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			cp := o
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListOrders(ctx context.Context, q port.OrderQuery) ([]domain.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].Status = status
			return nil
		}
	}
	return port.ErrNotFound
}

func (m *mockOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].PaymentStatus = status
			return nil
		}
	}
	return port.ErrNotFound
}

func (m *mockOrderRepo) SetTrackingNumber(ctx context.Context, orderID, trackingNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].TrackingNumber = trackingNumber
			return nil
		}
	}
	return port.ErrNotFound
}

// Mock CacheRepository
type mockCacheRepo struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{keys: make(map[string]bool)}
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockCacheRepo) DeleteIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

// Mock FulfillmentPublisher
type mockPublisher struct {
	mu        sync.Mutex
	published []domain.Order
	failWith  error
}

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.published = append(m.published, order)
	return nil
}

// Command seed loads a demo catalog into MySQL and issues long-lived session
// tokens for a demo customer and an admin, printed to stdout for use as
// bearer tokens against the API.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/acruxa/storefront/internal/adapter/storage"
	"github.com/acruxa/storefront/internal/config"
	"github.com/acruxa/storefront/internal/core/domain"
)

type seedProduct struct {
	name     string
	slug     string
	sku      string
	price    string
	stock    int
	featured bool
	category string
}

var seedCategories = []struct {
	name string
	slug string
}{
	{"Electronics", "electronics"},
	{"Books", "books"},
	{"Home & Kitchen", "home-kitchen"},
}

var seedProducts = []seedProduct{
	{"Wireless Earbuds", "wireless-earbuds", "ELEC-0001", "49.99", 120, true, "electronics"},
	{"Mechanical Keyboard", "mechanical-keyboard", "ELEC-0002", "89.00", 45, true, "electronics"},
	{"USB-C Charger 65W", "usb-c-charger-65w", "ELEC-0003", "29.50", 200, false, "electronics"},
	{"The Pragmatic Shopper", "the-pragmatic-shopper", "BOOK-0001", "19.99", 80, true, "books"},
	{"Notes on Retail", "notes-on-retail", "BOOK-0002", "12.50", 60, false, "books"},
	{"Cast Iron Skillet", "cast-iron-skillet", "HOME-0001", "34.95", 30, true, "home-kitchen"},
	{"French Press", "french-press", "HOME-0002", "24.00", 55, false, "home-kitchen"},
}

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	categoryIDs := make(map[string]string)
	for i, cat := range seedCategories {
		id := uuid.New().String()
		_, err := db.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, sort_order, is_active)
			VALUES (?, ?, ?, ?, 1)
			ON DUPLICATE KEY UPDATE id = id`,
			id, cat.name, cat.slug, i)
		if err != nil {
			log.Fatalf("seed category %s: %v", cat.slug, err)
		}

		// Re-read in case the row already existed.
		if err := db.QueryRowContext(ctx,
			`SELECT id FROM categories WHERE slug = ?`, cat.slug).Scan(&id); err != nil {
			log.Fatalf("read category %s: %v", cat.slug, err)
		}
		categoryIDs[cat.slug] = id
	}
	log.Printf("seeded %d categories", len(seedCategories))

	for _, p := range seedProducts {
		price := decimal.RequireFromString(p.price)
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, category_id, name, slug, sku, price, stock,
				is_active, is_featured, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, NOW(), NOW())
			ON DUPLICATE KEY UPDATE price = VALUES(price), stock = VALUES(stock)`,
			uuid.New().String(), categoryIDs[p.category], p.name, p.slug, p.sku,
			price, p.stock, p.featured)
		if err != nil {
			log.Fatalf("seed product %s: %v", p.slug, err)
		}
	}
	log.Printf("seeded %d products", len(seedProducts))

	sessions := storage.NewRedisAdapter(rdb)
	for _, account := range []struct {
		label string
		role  domain.Role
	}{
		{"customer", domain.RoleCustomer},
		{"admin", domain.RoleAdmin},
	} {
		token := uuid.New().String()
		session := domain.Session{
			Token:  token,
			UserID: "demo-" + account.label,
			Role:   account.role,
		}
		if err := sessions.PutSession(ctx, session, cfg.SessionTTL); err != nil {
			log.Fatalf("issue %s session: %v", account.label, err)
		}
		fmt.Printf("%s token: %s\n", account.label, token)
	}
}

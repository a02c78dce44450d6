package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string
	CategoryID string
	Name       string
	Slug       string
	SKU        string
	Price      decimal.Decimal
	Stock      int
	IsActive   bool
	IsFeatured bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	SortOrder int
	IsActive  bool
}

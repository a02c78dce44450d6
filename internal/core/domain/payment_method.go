package domain

import "time"

// PaymentMethod stores only the card brand and last four digits; the full
// number is validated at creation and discarded.
type PaymentMethod struct {
	ID           string
	UserID       string
	HolderName   string
	CardBrand    string
	CardLastFour string
	ExpiryMonth  int
	ExpiryYear   int
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// Address is user-owned reference data. At most one address per user carries
// IsDefault, enforced by the storage layer clearing the others first.
type Address struct {
	ID         string
	UserID     string
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package service

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrInvalidCard       = errors.New("invalid card number")
	ErrDuplicateProduct  = errors.New("product slug or sku already in use")
	ErrInvalidStatus     = errors.New("invalid status")
)

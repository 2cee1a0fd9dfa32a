package engine

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidOperation  = errors.New("invalid operation")

	// ErrValidation wraps bad input shape/range rejections. Operations that
	// return it leave state untouched.
	ErrValidation = errors.New("validation failed")
)

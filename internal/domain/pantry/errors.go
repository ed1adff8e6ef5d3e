package pantry

import "errors"

// Domain errors for pantry operations

var (
	ErrEmptyName        = errors.New("item name is required")
	ErrNegativeQuantity = errors.New("item quantity cannot be negative")
	ErrItemNotFound     = errors.New("stock item not found")
)

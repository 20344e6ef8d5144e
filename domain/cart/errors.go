package cart

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrItemNotFound product is not a line item of the cart
	ErrItemNotFound = errors.New("cart item not found")

	// ErrInvalidQuantity quantity must be at least one
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// NewItemNotFoundError creates a missing-line-item error with stack
func NewItemNotFoundError(productID string) error {
	return shared.NewDomainError(ErrItemNotFound, "cart", "",
		"product "+productID+" is not in the cart")
}

// NewInvalidQuantityError creates a quantity validation error
func NewInvalidQuantityError(quantity int) error {
	return shared.NewDomainError(ErrInvalidQuantity, "cart", "quantity",
		fmt.Sprintf("quantity must be positive, got %d", quantity))
}

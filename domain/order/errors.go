package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrOrderNotFound order does not exist (or email did not match on track)
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidState rejected status transition
	ErrInvalidState = errors.New("invalid order state transition")

	// ErrPriceMismatch a submitted item price differs from the live effective price
	ErrPriceMismatch = errors.New("price mismatch")

	// ErrEmptyOrder an order needs at least one item
	ErrEmptyOrder = errors.New("order must have at least one item")
)

// NewNotFoundError creates an order-not-found error with stack
func NewNotFoundError(ref string) error {
	return shared.NewDomainError(ErrOrderNotFound, "order", "", "order not found: "+ref)
}

// NewInvalidStateError creates a rejected-transition error
func NewInvalidStateError(from, to Status) error {
	return shared.NewDomainError(ErrInvalidState, "order", "status",
		fmt.Sprintf("cannot transition from %s to %s", from, to))
}

// NewPriceMismatchError creates a stale-price rejection carrying both prices
func NewPriceMismatchError(productID string, submitted, current float64) error {
	return shared.NewDomainError(ErrPriceMismatch, "order", "items",
		fmt.Sprintf("price for product %s has changed: submitted %.2f, current %.2f", productID, submitted, current))
}

// NewEmptyOrderError creates an empty-items validation error
func NewEmptyOrderError() error {
	return shared.NewDomainError(ErrEmptyOrder, "order", "items", "order must have at least one item")
}

// NewValidationError creates an order field validation error
func NewValidationError(field, reason string) error {
	return shared.NewDomainError(shared.ErrInvalidInput, "order", field, reason)
}

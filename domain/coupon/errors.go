package coupon

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrCouponNotFound no coupon with the given code or id
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidCoupon the coupon was found but rejected for the caller
	ErrInvalidCoupon = errors.New("invalid coupon")

	// ErrDuplicateCode coupon code already exists
	ErrDuplicateCode = errors.New("coupon code already exists")
)

// NewNotFoundError creates a coupon-not-found error with stack
func NewNotFoundError(code string) error {
	return shared.NewDomainError(ErrCouponNotFound, "coupon", "", "coupon not found: "+code)
}

// NewInvalidCouponError creates a rejection error carrying the exact reason
func NewInvalidCouponError(reason string) error {
	return shared.NewDomainError(ErrInvalidCoupon, "coupon", "", reason)
}

// NewDuplicateCodeError creates a unique-code violation error
func NewDuplicateCodeError(code string) error {
	return shared.NewDomainError(ErrDuplicateCode, "coupon", "code",
		"coupon code already exists: "+code)
}

// NewValidationError creates a coupon field validation error
func NewValidationError(field, reason string) error {
	return shared.NewDomainError(shared.ErrInvalidInput, "coupon", field, reason)
}

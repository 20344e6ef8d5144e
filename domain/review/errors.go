package review

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrReviewNotFound review does not exist
	ErrReviewNotFound = errors.New("review not found")

	// ErrDuplicateReview the (user, product) pair already has a review
	ErrDuplicateReview = errors.New("duplicate review")
)

// NewNotFoundError creates a review-not-found error with stack
func NewNotFoundError(id string) error {
	return shared.NewDomainError(ErrReviewNotFound, "review", "", "review not found: "+id)
}

// NewDuplicateReviewError creates a one-review-per-product violation error
func NewDuplicateReviewError(userID, productID string) error {
	return shared.NewDomainError(ErrDuplicateReview, "review", "",
		"user "+userID+" has already reviewed product "+productID)
}

// NewValidationError creates a review field validation error
func NewValidationError(field, reason string) error {
	return shared.NewDomainError(shared.ErrInvalidInput, "review", field, reason)
}

package catalog

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrProductNotFound product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock requested quantity exceeds current stock
	ErrOutOfStock = errors.New("insufficient stock")

	// ErrEntityInUse taxonomy entity is still referenced and cannot be deleted
	ErrEntityInUse = errors.New("entity is referenced and cannot be deleted")

	// ErrDuplicateSlug slug or sku already taken
	ErrDuplicateSlug = errors.New("slug or sku already exists")

	// ErrCategoryCycle reparenting would create a cycle in the category tree
	ErrCategoryCycle = errors.New("category cycle")
)

// NewProductNotFoundError creates a product-not-found error with stack
func NewProductNotFoundError(id string) error {
	return shared.NewDomainError(ErrProductNotFound, "product", "", "product not found: "+id)
}

// NewOutOfStockError creates an out-of-stock error carrying the shortfall
func NewOutOfStockError(productID string, requested, available int) error {
	return shared.NewDomainError(ErrOutOfStock, "product", "stock",
		fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", productID, requested, available))
}

// NewEntityInUseError creates a deletion-guard error
func NewEntityInUseError(entity, id, reason string) error {
	return shared.NewDomainError(ErrEntityInUse, entity, "",
		fmt.Sprintf("%s %s cannot be deleted: %s", entity, id, reason))
}

// NewDuplicateSlugError creates a uniqueness violation error
func NewDuplicateSlugError(entity, value string) error {
	return shared.NewDomainError(ErrDuplicateSlug, entity, "slug",
		fmt.Sprintf("%s with identifier %q already exists", entity, value))
}

// NewCategoryCycleError creates a cycle rejection error
func NewCategoryCycleError(categoryID, parentID string) error {
	return shared.NewDomainError(ErrCategoryCycle, "category", "parent_id",
		fmt.Sprintf("cannot move category %s under %s: would create a cycle", categoryID, parentID))
}

// NewProductValidationError creates a product field validation error
func NewProductValidationError(field, reason string) error {
	return shared.NewDomainError(shared.ErrInvalidInput, "product", field, reason)
}

// NewTaxonomyValidationError creates a taxonomy field validation error
func NewTaxonomyValidationError(entity, field, reason string) error {
	return shared.NewDomainError(shared.ErrInvalidInput, entity, field, reason)
}

// NewTaxonomyNotFoundError creates a not-found error for a taxonomy entity
func NewTaxonomyNotFoundError(entity, id string) error {
	return shared.NewDomainError(shared.ErrNotFound, entity, "", entity+" not found: "+id)
}

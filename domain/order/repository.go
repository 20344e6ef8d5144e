package order

import (
	"context"
	"time"
)

// ListFilter narrows admin order listings.
type ListFilter struct {
	Status   Status
	UserID   string
	Page     int
	PageSize int
}

// Repository persists orders.
type Repository interface {
	NextIdentity() string

	// NextOrderNumber reserves the next number for the month of now, format
	// YYMM-#####. Implementations must be safe under concurrent checkouts;
	// the MySQL repository uses an atomic per-month counter row.
	NextOrderNumber(ctx context.Context, now time.Time) (string, error)

	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)

	// CountByUser returns how many orders a user has placed, for the
	// new-customer coupon restriction.
	CountByUser(ctx context.Context, userID string) (int64, error)

	// CountByUserAndProduct counts the user's orders containing the product
	// in any of the given statuses, for verified-purchase checks.
	CountByUserAndProduct(ctx context.Context, userID, productID string, statuses []Status) (int64, error)
}

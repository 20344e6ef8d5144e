package coupon

import "context"

// Repository persists coupons and their usage ledger.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, c *Coupon) error
	FindByID(ctx context.Context, id string) (*Coupon, error)

	// FindByCode matches the normalized (uppercased) code.
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	List(ctx context.Context, activeOnly bool) ([]*Coupon, error)
	Delete(ctx context.Context, id string) error

	// RecordUsage atomically increments the global counter and the user's
	// ledger entry. Called inside the checkout transaction.
	RecordUsage(ctx context.Context, couponID, userID string) error
}

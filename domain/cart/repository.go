package cart

import "context"

// Repository persists carts, one per user.
type Repository interface {
	NextIdentity() string

	// FindByUserID returns the user's cart or shared.ErrNotFound.
	// Callers wanting lazy creation use the application service's GetOrCreate.
	FindByUserID(ctx context.Context, userID string) (*Cart, error)

	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}

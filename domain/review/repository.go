package review

import "context"

// Repository persists reviews and their vote sets.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*Review, error)

	// FindByProduct lists reviews for a product; approvedOnly filters to the
	// set that feeds rating aggregation.
	FindByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*Review, error)

	List(ctx context.Context, reportedOnly bool) ([]*Review, error)
	Delete(ctx context.Context, id string) error
}

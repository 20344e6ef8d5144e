package mocks

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/review"

	"github.com/google/uuid"
)

// ReviewRepository in-memory implementation of the review repository
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*review.Review
}

// NewReviewRepository creates an empty in-memory review repository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]*review.Review)}
}

// NextIdentity generates a new review ID
func (r *ReviewRepository) NextIdentity() string {
	return "review-" + uuid.New().String()
}

func cloneReview(rev *review.Review) *review.Review {
	clone := *rev
	if rev.HelpfulVotes != nil {
		clone.HelpfulVotes = make(map[string]bool, len(rev.HelpfulVotes))
		for k, v := range rev.HelpfulVotes {
			clone.HelpfulVotes[k] = v
		}
	}
	if rev.NotHelpfulVotes != nil {
		clone.NotHelpfulVotes = make(map[string]bool, len(rev.NotHelpfulVotes))
		for k, v := range rev.NotHelpfulVotes {
			clone.NotHelpfulVotes[k] = v
		}
	}
	clone.Pros = append([]string(nil), rev.Pros...)
	clone.Cons = append([]string(nil), rev.Cons...)
	return &clone
}

// Save stores the review, enforcing one review per (user, product)
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.ID != rev.ID && existing.UserID == rev.UserID && existing.ProductID == rev.ProductID {
			return review.NewDuplicateReviewError(rev.UserID, rev.ProductID)
		}
	}
	r.reviews[rev.ID] = cloneReview(rev)
	return nil
}

// FindByID returns the review or review.ErrReviewNotFound
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, review.NewNotFoundError(id)
	}
	return cloneReview(rev), nil
}

// FindByUserAndProduct returns the user's review of a product
func (r *ReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ProductID == productID {
			return cloneReview(rev), nil
		}
	}
	return nil, review.NewNotFoundError(productID)
}

// FindByProduct lists reviews for a product, newest first
func (r *ReviewRepository) FindByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*review.Review
	for _, rev := range r.reviews {
		if rev.ProductID != productID {
			continue
		}
		if approvedOnly && !rev.IsApproved {
			continue
		}
		matched = append(matched, cloneReview(rev))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// List lists all reviews for moderation, newest first
func (r *ReviewRepository) List(ctx context.Context, reportedOnly bool) ([]*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*review.Review
	for _, rev := range r.reviews {
		if reportedOnly && !rev.Reported {
			continue
		}
		matched = append(matched, cloneReview(rev))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// Delete removes the review
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return review.NewNotFoundError(id)
	}
	delete(r.reviews, id)
	return nil
}

// Compile-time interface implementation check
var _ review.Repository = (*ReviewRepository)(nil)

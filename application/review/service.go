/*
Package review Application Layer - review lifecycle and rating aggregation.

Every write that can change the set of approved reviews for a product ends
with a recomputation of that product's rating fields over the approved set.
The product is the only consumer of the aggregate; reviews never read it back.
*/
package review

import (
	"context"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
)

// verifiedStatuses are the order states that count as a completed purchase
// for the verified-purchase badge.
var verifiedStatuses = []order.Status{order.StatusShipped, order.StatusDelivered}

// ApplicationService coordinates review business processes
type ApplicationService struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
	autoApprove bool
}

// NewApplicationService Create review application service
func NewApplicationService(
	reviewRepo review.Repository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	autoApprove bool,
) *ApplicationService {
	return &ApplicationService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		autoApprove: autoApprove,
	}
}

// CreateReviewRequest Create review request DTO
type CreateReviewRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Title     string   `json:"title" binding:"required"`
	Comment   string   `json:"comment"`
	Pros      []string `json:"pros"`
	Cons      []string `json:"cons"`
}

// UpdateReviewRequest Update review request DTO
type UpdateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Title   string   `json:"title" binding:"required"`
	Comment string   `json:"comment"`
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
}

// ReportRequest Report review request DTO
type ReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Create creates a review for a product. One review per user and product; the
// verified-purchase badge is derived from the user's shipped or delivered
// orders containing the product.
func (s *ApplicationService) Create(ctx context.Context, userID string, req CreateReviewRequest) (*review.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if existing, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, req.ProductID); err == nil && existing != nil {
		return nil, review.NewDuplicateReviewError(userID, req.ProductID)
	}

	purchases, err := s.orderRepo.CountByUserAndProduct(ctx, userID, req.ProductID, verifiedStatuses)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r := &review.Review{
		ID:                 s.reviewRepo.NextIdentity(),
		ProductID:          req.ProductID,
		UserID:             userID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		Pros:               req.Pros,
		Cons:               req.Cons,
		IsVerifiedPurchase: purchases > 0,
		IsApproved:         s.autoApprove,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	if r.IsApproved {
		if err := s.recomputeRating(ctx, r.ProductID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Update edits a review. Only the author may edit; the edit drops the review
// back to unapproved when moderation is on.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, req UpdateReviewRequest) (*review.Review, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, review.NewNotFoundError(id)
	}

	wasApproved := r.IsApproved
	r.Rating = req.Rating
	r.Title = req.Title
	r.Comment = req.Comment
	r.Pros = req.Pros
	r.Cons = req.Cons
	r.IsApproved = s.autoApprove
	r.UpdatedAt = time.Now()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	if wasApproved || r.IsApproved {
		if err := s.recomputeRating(ctx, r.ProductID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Delete removes a review. The author or an admin may delete.
func (s *ApplicationService) Delete(ctx context.Context, actor shared.Actor, id string) error {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Kind != shared.ActorAdmin && r.UserID != actor.ID {
		return review.NewNotFoundError(id)
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	if r.IsApproved {
		return s.recomputeRating(ctx, r.ProductID)
	}
	return nil
}

// Get Get review by ID
func (s *ApplicationService) Get(ctx context.Context, id string) (*review.Review, error) {
	return s.reviewRepo.FindByID(ctx, id)
}

// ListByProduct lists a product's reviews. The public surface passes
// approvedOnly true; moderation sees everything.
func (s *ApplicationService) ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*review.Review, error) {
	return s.reviewRepo.FindByProduct(ctx, productID, approvedOnly)
}

// ListForModeration lists reviews for the admin moderation queue
func (s *ApplicationService) ListForModeration(ctx context.Context, reportedOnly bool) ([]*review.Review, error) {
	return s.reviewRepo.List(ctx, reportedOnly)
}

// Approve marks a review approved and folds it into the product rating
func (s *ApplicationService) Approve(ctx context.Context, id string) (*review.Review, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsApproved {
		return r, nil
	}

	r.IsApproved = true
	r.Reported = false
	r.ReportReason = ""
	r.UpdatedAt = time.Now()
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	if err := s.recomputeRating(ctx, r.ProductID); err != nil {
		return nil, err
	}
	return r, nil
}

// VoteHelpful records a helpful vote. Revoting flips the vote.
func (s *ApplicationService) VoteHelpful(ctx context.Context, userID, id string) (*review.Review, error) {
	return s.vote(ctx, userID, id, true)
}

// VoteNotHelpful records a not-helpful vote. Revoting flips the vote.
func (s *ApplicationService) VoteNotHelpful(ctx context.Context, userID, id string) (*review.Review, error) {
	return s.vote(ctx, userID, id, false)
}

func (s *ApplicationService) vote(ctx context.Context, userID, id string, helpful bool) (*review.Review, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if helpful {
		r.VoteHelpful(userID)
	} else {
		r.VoteNotHelpful(userID)
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Report flags a review for the moderation queue
func (s *ApplicationService) Report(ctx context.Context, id string, req ReportRequest) error {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	r.Report(req.Reason)
	return s.reviewRepo.Save(ctx, r)
}

// recomputeRating rebuilds the product's rating fields from approved reviews.
// Zero approved reviews reset the fields.
func (s *ApplicationService) recomputeRating(ctx context.Context, productID string) error {
	approved, err := s.reviewRepo.FindByProduct(ctx, productID, true)
	if err != nil {
		return err
	}
	agg := review.ComputeAggregate(approved)

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	p.ApplyRating(agg.Rating, agg.Count)
	return s.productRepo.Save(ctx, p)
}

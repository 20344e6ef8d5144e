package mysql

import (
	"context"
	"errors"

	"storefront/domain/review"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository MySQL/GORM implementation of the review repository
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository Create review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new review ID
func (r *ReviewRepository) NextIdentity() string {
	return "review-" + uuid.New().String()
}

// Save Save review (create or update)
// The unique (product, user) index backs the one-review-per-product rule
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	if err := r.getDB(ctx).Save(po.FromReviewDomain(rev)).Error; err != nil {
		if isDuplicateEntry(err) {
			return review.NewDuplicateReviewError(rev.UserID, rev.ProductID)
		}
		return err
	}
	return nil
}

// FindByID Find review by ID
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	if err := r.getDB(ctx).First(&reviewPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.NewNotFoundError(id)
		}
		return nil, err
	}
	return reviewPO.ToDomain(), nil
}

// FindByUserAndProduct Find the user's review of a product
func (r *ReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	err := r.getDB(ctx).First(&reviewPO, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.NewNotFoundError(productID)
		}
		return nil, err
	}
	return reviewPO.ToDomain(), nil
}

// FindByProduct List reviews for a product, newest first
func (r *ReviewRepository) FindByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*review.Review, error) {
	db := r.getDB(ctx).Where("product_id = ?", productID)
	if approvedOnly {
		db = db.Where("is_approved = ?", true)
	}

	var reviewPOs []po.ReviewPO
	if err := db.Order("created_at DESC").Find(&reviewPOs).Error; err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, len(reviewPOs))
	for i := range reviewPOs {
		reviews[i] = reviewPOs[i].ToDomain()
	}
	return reviews, nil
}

// List List all reviews for moderation, newest first
func (r *ReviewRepository) List(ctx context.Context, reportedOnly bool) ([]*review.Review, error) {
	db := r.getDB(ctx).Model(&po.ReviewPO{})
	if reportedOnly {
		db = db.Where("reported = ?", true)
	}

	var reviewPOs []po.ReviewPO
	if err := db.Order("created_at DESC").Find(&reviewPOs).Error; err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, len(reviewPOs))
	for i := range reviewPOs {
		reviews[i] = reviewPOs[i].ToDomain()
	}
	return reviews, nil
}

// Delete Delete review
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ReviewPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.NewNotFoundError(id)
	}
	return nil
}

// Compile-time interface implementation check
var _ review.Repository = (*ReviewRepository)(nil)

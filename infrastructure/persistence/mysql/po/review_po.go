package po

import (
	"time"

	"storefront/domain/review"
)

// ReviewPO Review persistence object
// Vote sets are JSON maps keyed by user ID; pros and cons are JSON arrays
type ReviewPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	ProductID string `gorm:"size:64;index:idx_reviews_product_user,unique;not null"`
	UserID    string `gorm:"size:64;index:idx_reviews_product_user,unique;not null"`

	Rating  int      `gorm:"not null"`
	Title   string   `gorm:"size:255;not null"`
	Comment string   `gorm:"type:text"`
	Pros    []string `gorm:"serializer:json"`
	Cons    []string `gorm:"serializer:json"`

	IsVerifiedPurchase bool `gorm:"not null;default:false"`
	IsApproved         bool `gorm:"not null;default:false;index"`

	HelpfulVotes    map[string]bool `gorm:"serializer:json"`
	NotHelpfulVotes map[string]bool `gorm:"serializer:json"`

	Reported     bool   `gorm:"not null;default:false;index"`
	ReportReason string `gorm:"size:500"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ReviewPO) TableName() string {
	return "reviews"
}

// FromReviewDomain Convert domain model to persistence object
func FromReviewDomain(r *review.Review) *ReviewPO {
	return &ReviewPO{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		UserID:             r.UserID,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		Pros:               r.Pros,
		Cons:               r.Cons,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		IsApproved:         r.IsApproved,
		HelpfulVotes:       r.HelpfulVotes,
		NotHelpfulVotes:    r.NotHelpfulVotes,
		Reported:           r.Reported,
		ReportReason:       r.ReportReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *ReviewPO) ToDomain() *review.Review {
	return &review.Review{
		ID:                 po.ID,
		ProductID:          po.ProductID,
		UserID:             po.UserID,
		Rating:             po.Rating,
		Title:              po.Title,
		Comment:            po.Comment,
		Pros:               po.Pros,
		Cons:               po.Cons,
		IsVerifiedPurchase: po.IsVerifiedPurchase,
		IsApproved:         po.IsApproved,
		HelpfulVotes:       po.HelpfulVotes,
		NotHelpfulVotes:    po.NotHelpfulVotes,
		Reported:           po.Reported,
		ReportReason:       po.ReportReason,
		CreatedAt:          po.CreatedAt,
		UpdatedAt:          po.UpdatedAt,
	}
}

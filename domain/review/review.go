/*
Package review implements product reviews, helpfulness voting and the rating
aggregation that feeds back into the catalog.

One review per (user, product) pair. A product's rating fields are recomputed
over approved reviews only, on every save or delete that touches the product.
*/
package review

import (
	"time"
)

// Review is a customer's review of a product.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`

	Rating  int      `json:"rating"` // 1..5
	Title   string   `json:"title"`
	Comment string   `json:"comment,omitempty"`
	Pros    []string `json:"pros,omitempty"`
	Cons    []string `json:"cons,omitempty"`

	// IsVerifiedPurchase is computed at creation by checking the user's
	// delivered/shipped orders for the product.
	IsVerifiedPurchase bool `json:"is_verified_purchase"`

	// IsApproved gates aggregation; its default comes from configuration.
	IsApproved bool `json:"is_approved"`

	// Vote sets keyed by user ID. A user is in at most one of the two.
	HelpfulVotes    map[string]bool `json:"-"`
	NotHelpfulVotes map[string]bool `json:"-"`

	Reported     bool   `json:"reported"`
	ReportReason string `json:"report_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks field invariants
func (r *Review) Validate() error {
	switch {
	case r.ProductID == "":
		return NewValidationError("product_id", "product is required")
	case r.UserID == "":
		return NewValidationError("user_id", "user is required")
	case r.Rating < 1 || r.Rating > 5:
		return NewValidationError("rating", "rating must be between 1 and 5")
	case r.Title == "":
		return NewValidationError("title", "title is required")
	}
	return nil
}

// HelpfulCount returns the number of helpful votes
func (r *Review) HelpfulCount() int { return len(r.HelpfulVotes) }

// NotHelpfulCount returns the number of not-helpful votes
func (r *Review) NotHelpfulCount() int { return len(r.NotHelpfulVotes) }

// VoteHelpful records a helpful vote, moving the user out of the opposite set
func (r *Review) VoteHelpful(userID string) {
	if r.HelpfulVotes == nil {
		r.HelpfulVotes = make(map[string]bool)
	}
	delete(r.NotHelpfulVotes, userID)
	r.HelpfulVotes[userID] = true
	r.UpdatedAt = time.Now()
}

// VoteNotHelpful records a not-helpful vote, moving the user out of the opposite set
func (r *Review) VoteNotHelpful(userID string) {
	if r.NotHelpfulVotes == nil {
		r.NotHelpfulVotes = make(map[string]bool)
	}
	delete(r.HelpfulVotes, userID)
	r.NotHelpfulVotes[userID] = true
	r.UpdatedAt = time.Now()
}

// Report flags the review for moderation
func (r *Review) Report(reason string) {
	r.Reported = true
	r.ReportReason = reason
	r.UpdatedAt = time.Now()
}

// Aggregate is the recomputed rating summary for one product.
type Aggregate struct {
	Rating float64
	Count  int
}

// ComputeAggregate computes mean rating and count over approved reviews.
// An empty input yields the zero Aggregate, which resets the product.
func ComputeAggregate(approved []*Review) Aggregate {
	if len(approved) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range approved {
		sum += r.Rating
	}
	return Aggregate{
		Rating: float64(sum) / float64(len(approved)),
		Count:  len(approved),
	}
}

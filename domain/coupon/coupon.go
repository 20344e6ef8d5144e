/*
Package coupon implements discount codes and their usage accounting.

Validity and eligibility are separate questions: IsValid is a property of the
coupon alone (active, inside window, global cap not reached); CanBeUsedBy also
looks at the order amount and the requesting user's history. Eligibility
checks return a structured {Valid, Reason} so callers can surface the exact
rejection to the shopper instead of a generic failure.
*/
package coupon

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/catalog"
)

// Type discriminates how Value is interpreted.
type Type string

const (
	TypePercentage  Type = "percentage"   // Value is a percent of the subtotal
	TypeFixedAmount Type = "fixed_amount" // Value is an absolute amount
)

// Usage is one user's entry in the usage ledger.
type Usage struct {
	Count      int       `json:"count"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// Coupon is a discount code with validity window, usage limits and
// applicability restrictions.
type Coupon struct {
	ID          string `json:"id"`
	Code        string `json:"code"` // stored uppercased
	Description string `json:"description,omitempty"`

	Type  Type    `json:"type"`
	Value float64 `json:"value"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`

	MinimumPurchase float64 `json:"minimum_purchase"`
	MaximumDiscount float64 `json:"maximum_discount"` // 0 = no cap

	UsageLimit   int `json:"usage_limit"`    // global, 0 = unlimited
	PerUserLimit int `json:"per_user_limit"` // 0 = unlimited
	TotalUsed    int `json:"total_used"`

	// UsedBy ledger: per-user usage count and last-used timestamp.
	UsedBy map[string]Usage `json:"used_by,omitempty"`

	// Applicability restrictions. AllProducts short-circuits the sets.
	AllProducts         bool     `json:"all_products"`
	IncludedProductIDs  []string `json:"included_product_ids,omitempty"`
	ExcludedProductIDs  []string `json:"excluded_product_ids,omitempty"`
	IncludedCategoryIDs []string `json:"included_category_ids,omitempty"`
	ExcludedCategoryIDs []string `json:"excluded_category_ids,omitempty"`

	// NewCustomersOnly restricts the coupon to users with zero prior orders.
	NewCustomersOnly bool `json:"new_customers_only"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeCode uppercases and trims a user-supplied code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks field invariants
func (c *Coupon) Validate() error {
	switch {
	case NormalizeCode(c.Code) == "":
		return NewValidationError("code", "code is required")
	case c.Type != TypePercentage && c.Type != TypeFixedAmount:
		return NewValidationError("type", "type must be percentage or fixed_amount")
	case c.Value <= 0:
		return NewValidationError("value", "value must be positive")
	case c.Type == TypePercentage && c.Value > 100:
		return NewValidationError("value", "percentage value cannot exceed 100")
	case !c.ValidUntil.IsZero() && !c.ValidFrom.IsZero() && c.ValidUntil.Before(c.ValidFrom):
		return NewValidationError("valid_until", "valid_until must not precede valid_from")
	case c.MinimumPurchase < 0:
		return NewValidationError("minimum_purchase", "minimum purchase must not be negative")
	case c.MaximumDiscount < 0:
		return NewValidationError("maximum_discount", "maximum discount must not be negative")
	}
	return nil
}

// IsValid reports whether the coupon is usable at all right now:
// active, inside [ValidFrom, ValidUntil], global cap not exhausted.
func (c *Coupon) IsValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if !c.ValidFrom.IsZero() && now.Before(c.ValidFrom) {
		return false
	}
	if !c.ValidUntil.IsZero() && now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit > 0 && c.TotalUsed >= c.UsageLimit {
		return false
	}
	return true
}

// Eligibility is the structured result of CanBeUsedBy.
type Eligibility struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// CanBeUsedBy checks whether a user may apply the coupon to an order of the
// given amount. priorOrders is the user's count of previously placed orders,
// used for the new-customer restriction.
func (c *Coupon) CanBeUsedBy(userID string, orderAmount float64, priorOrders int64, now time.Time) Eligibility {
	if !c.IsValid(now) {
		return Eligibility{Valid: false, Reason: "coupon is not valid or has expired"}
	}
	if orderAmount < c.MinimumPurchase {
		return Eligibility{
			Valid:  false,
			Reason: fmt.Sprintf("minimum purchase of %.2f not met", c.MinimumPurchase),
		}
	}
	if c.PerUserLimit > 0 {
		if usage, ok := c.UsedBy[userID]; ok && usage.Count >= c.PerUserLimit {
			return Eligibility{Valid: false, Reason: "per-user usage limit reached"}
		}
	}
	if c.NewCustomersOnly && priorOrders > 0 {
		return Eligibility{Valid: false, Reason: "coupon is limited to new customers"}
	}
	return Eligibility{Valid: true}
}

// CalculateDiscount computes the absolute discount for a subtotal, clamped to
// MaximumDiscount when set and never exceeding the subtotal.
func (c *Coupon) CalculateDiscount(subtotal float64) float64 {
	var discount float64
	switch c.Type {
	case TypePercentage:
		discount = subtotal * c.Value / 100
	case TypeFixedAmount:
		discount = c.Value
	}
	if c.MaximumDiscount > 0 && discount > c.MaximumDiscount {
		discount = c.MaximumDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// AppliesTo reports whether the coupon covers a product.
// Exclusions win over inclusions; AllProducts bypasses the include sets but
// not the exclusions.
func (c *Coupon) AppliesTo(p *catalog.Product) bool {
	for _, id := range c.ExcludedProductIDs {
		if id == p.ID {
			return false
		}
	}
	for _, id := range c.ExcludedCategoryIDs {
		if p.InCategory(id) {
			return false
		}
	}
	if c.AllProducts {
		return true
	}
	for _, id := range c.IncludedProductIDs {
		if id == p.ID {
			return true
		}
	}
	for _, id := range c.IncludedCategoryIDs {
		if p.InCategory(id) {
			return true
		}
	}
	return len(c.IncludedProductIDs) == 0 && len(c.IncludedCategoryIDs) == 0
}

// RecordUsage bumps the global counter and the user's ledger entry.
// The MySQL repository performs the equivalent update atomically inside the
// checkout transaction; this method backs the in-memory implementation.
func (c *Coupon) RecordUsage(userID string, now time.Time) {
	if c.UsedBy == nil {
		c.UsedBy = make(map[string]Usage)
	}
	usage := c.UsedBy[userID]
	usage.Count++
	usage.LastUsedAt = now
	c.UsedBy[userID] = usage
	c.TotalUsed++
	c.UpdatedAt = now
}

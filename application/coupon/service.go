/*
Package coupon Application Layer - coupon administration and validation.

Admin mutations invalidate the cached entry for the code so shoppers never
validate against a stale coupon. The public validation endpoint reports the
structured eligibility result instead of failing, so clients can show the
exact rejection reason.
*/
package coupon

import (
	"context"
	"time"

	"storefront/domain/coupon"
	"storefront/domain/order"
	"storefront/infrastructure/cache"
)

// ApplicationService coordinates coupon business processes
type ApplicationService struct {
	couponRepo coupon.Repository
	orderRepo  order.Repository
	cache      *cache.Cache
}

// NewApplicationService Create coupon application service.
// cache may be nil; lookups then always hit the repository.
func NewApplicationService(couponRepo coupon.Repository, orderRepo order.Repository, c *cache.Cache) *ApplicationService {
	return &ApplicationService{couponRepo: couponRepo, orderRepo: orderRepo, cache: c}
}

// CouponRequest Create/update coupon request DTO
type CouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" binding:"required,oneof=percentage fixed_amount"`
	Value       float64 `json:"value" binding:"required,gt=0"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`

	MinimumPurchase float64 `json:"minimum_purchase" binding:"min=0"`
	MaximumDiscount float64 `json:"maximum_discount" binding:"min=0"`
	UsageLimit      int     `json:"usage_limit" binding:"min=0"`
	PerUserLimit    int     `json:"per_user_limit" binding:"min=0"`

	AllProducts         bool     `json:"all_products"`
	IncludedProductIDs  []string `json:"included_product_ids"`
	ExcludedProductIDs  []string `json:"excluded_product_ids"`
	IncludedCategoryIDs []string `json:"included_category_ids"`
	ExcludedCategoryIDs []string `json:"excluded_category_ids"`
	NewCustomersOnly    bool     `json:"new_customers_only"`

	IsActive bool `json:"is_active"`
}

func applyCouponRequest(c *coupon.Coupon, req CouponRequest) {
	c.Code = coupon.NormalizeCode(req.Code)
	c.Description = req.Description
	c.Type = coupon.Type(req.Type)
	c.Value = req.Value
	c.ValidFrom = req.ValidFrom
	c.ValidUntil = req.ValidUntil
	c.MinimumPurchase = req.MinimumPurchase
	c.MaximumDiscount = req.MaximumDiscount
	c.UsageLimit = req.UsageLimit
	c.PerUserLimit = req.PerUserLimit
	c.AllProducts = req.AllProducts
	c.IncludedProductIDs = req.IncludedProductIDs
	c.ExcludedProductIDs = req.ExcludedProductIDs
	c.IncludedCategoryIDs = req.IncludedCategoryIDs
	c.ExcludedCategoryIDs = req.ExcludedCategoryIDs
	c.NewCustomersOnly = req.NewCustomersOnly
	c.IsActive = req.IsActive
	c.UpdatedAt = time.Now()
}

// Create Create coupon
func (s *ApplicationService) Create(ctx context.Context, req CouponRequest) (*coupon.Coupon, error) {
	c := &coupon.Coupon{ID: s.couponRepo.NextIdentity(), CreatedAt: time.Now()}
	applyCouponRequest(c, req)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update Update coupon. Usage counters are never touched here.
func (s *ApplicationService) Update(ctx context.Context, id string, req CouponRequest) (*coupon.Coupon, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCode := c.Code
	applyCouponRequest(c, req)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.cache.InvalidateCoupon(ctx, oldCode)
	if c.Code != oldCode {
		s.cache.InvalidateCoupon(ctx, c.Code)
	}
	return c, nil
}

// Get Get coupon by ID
func (s *ApplicationService) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.couponRepo.FindByID(ctx, id)
}

// List List coupons
func (s *ApplicationService) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	return s.couponRepo.List(ctx, activeOnly)
}

// SetActive toggles whether the coupon can be used
func (s *ApplicationService) SetActive(ctx context.Context, id string, active bool) (*coupon.Coupon, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.IsActive = active
	c.UpdatedAt = time.Now()
	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.cache.InvalidateCoupon(ctx, c.Code)
	return c, nil
}

// Delete Delete coupon and its usage ledger
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateCoupon(ctx, c.Code)
	return nil
}

// ValidationResult Public coupon validation response DTO
type ValidationResult struct {
	Valid    bool    `json:"valid"`
	Reason   string  `json:"reason,omitempty"`
	Code     string  `json:"code,omitempty"`
	Discount float64 `json:"discount,omitempty"`
}

// Validate checks a code against the user and amount without consuming it
func (s *ApplicationService) Validate(ctx context.Context, userID, code string, amount float64) (*ValidationResult, error) {
	cpn := s.cache.GetCoupon(ctx, code)
	if cpn == nil {
		var err error
		cpn, err = s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		s.cache.SetCoupon(ctx, cpn)
	}

	// Anonymous shoppers have no order history; the new-customer restriction
	// treats them as new.
	var priorOrders int64
	if userID != "" {
		var err error
		priorOrders, err = s.orderRepo.CountByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	eligibility := cpn.CanBeUsedBy(userID, amount, priorOrders, time.Now())
	if !eligibility.Valid {
		return &ValidationResult{Valid: false, Reason: eligibility.Reason}, nil
	}
	return &ValidationResult{
		Valid:    true,
		Code:     cpn.Code,
		Discount: cpn.CalculateDiscount(amount),
	}, nil
}

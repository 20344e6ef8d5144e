/*
Package cart Application Layer - shopping cart orchestration.

Every mutation follows the same shape: load (or lazily create) the cart, apply
the change against the live product, re-derive the coupon discount, recompute
the totals and persist. The derived discount is recomputed on every touch so a
cart can never carry a stale discount after its contents changed.
*/
package cart

import (
	"context"
	"errors"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/cache"
)

// ApplicationService coordinates cart business processes
type ApplicationService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	couponRepo  coupon.Repository
	orderRepo   order.Repository
	cache       *cache.Cache
	rules       cart.PricingRules
}

// NewApplicationService Create cart application service.
// cache may be nil; coupon lookups then always hit the repository.
func NewApplicationService(
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	couponRepo coupon.Repository,
	orderRepo order.Repository,
	c *cache.Cache,
	rules cart.PricingRules,
) *ApplicationService {
	return &ApplicationService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		orderRepo:   orderRepo,
		cache:       c,
		rules:       rules,
	}
}

// AddItemRequest Add item to cart request DTO
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest Change line item quantity request DTO
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ApplyCouponRequest Apply coupon to cart request DTO
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *ApplicationService) GetCart(ctx context.Context, userID string) (*cart.Cart, error) {
	return s.getOrCreate(ctx, userID)
}

func (s *ApplicationService) getOrCreate(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	// Only a missing cart starts a fresh one; storage failures surface.
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	c = cart.New(s.cartRepo.NextIdentity(), userID)
	c.Recalculate(s.rules)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem adds a product to the cart, merging with an existing line
func (s *ApplicationService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, catalog.NewProductNotFoundError(req.ProductID)
	}
	if err := c.AddItem(p, req.Quantity); err != nil {
		return nil, err
	}

	return s.finalize(ctx, c)
}

// UpdateItemQuantity sets the quantity of an existing line item
func (s *ApplicationService) UpdateItemQuantity(ctx context.Context, userID, productID string, req UpdateItemRequest) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateItemQuantity(p, req.Quantity); err != nil {
		return nil, err
	}

	return s.finalize(ctx, c)
}

// RemoveItem drops a line item from the cart
func (s *ApplicationService) RemoveItem(ctx context.Context, userID, productID string) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	return s.finalize(ctx, c)
}

// Clear empties the cart and detaches any coupon
func (s *ApplicationService) Clear(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	c.Recalculate(s.rules)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyCoupon validates a coupon for the user and attaches it to the cart
func (s *ApplicationService) ApplyCoupon(ctx context.Context, userID string, req ApplyCouponRequest) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	cpn, err := s.findCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	priorOrders, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	eligibleSubtotal, err := s.eligibleSubtotal(ctx, c, cpn)
	if err != nil {
		return nil, err
	}

	eligibility := cpn.CanBeUsedBy(userID, c.RawSubtotal(), priorOrders, time.Now())
	if !eligibility.Valid {
		return nil, coupon.NewInvalidCouponError(eligibility.Reason)
	}
	if eligibleSubtotal <= 0 {
		return nil, coupon.NewInvalidCouponError("coupon does not apply to any item in the cart")
	}

	c.SetCoupon(cpn.Code, cpn.CalculateDiscount(eligibleSubtotal))
	c.Recalculate(s.rules)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveCoupon detaches the coupon from the cart
func (s *ApplicationService) RemoveCoupon(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.ClearCoupon()
	c.Recalculate(s.rules)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// findCoupon resolves a code through the cache, falling back to the repository
func (s *ApplicationService) findCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	if cached := s.cache.GetCoupon(ctx, code); cached != nil {
		return cached, nil
	}
	cpn, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.cache.SetCoupon(ctx, cpn)
	return cpn, nil
}

// eligibleSubtotal sums the line subtotals the coupon applies to
func (s *ApplicationService) eligibleSubtotal(ctx context.Context, c *cart.Cart, cpn *coupon.Coupon) (float64, error) {
	sum := 0.0
	for _, item := range c.Items {
		p, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return 0, err
		}
		if cpn.AppliesTo(p) {
			sum += item.Subtotal()
		}
	}
	return sum, nil
}

// finalize re-derives the coupon discount, recomputes totals and persists.
// A coupon that no longer validates against the changed cart is dropped.
func (s *ApplicationService) finalize(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	if c.CouponCode != "" {
		cpn, err := s.findCoupon(ctx, c.CouponCode)
		if err != nil {
			c.ClearCoupon()
		} else {
			priorOrders, err := s.orderRepo.CountByUser(ctx, c.UserID)
			if err != nil {
				return nil, err
			}
			eligibleSubtotal, err := s.eligibleSubtotal(ctx, c, cpn)
			if err != nil {
				return nil, err
			}
			eligibility := cpn.CanBeUsedBy(c.UserID, c.RawSubtotal(), priorOrders, time.Now())
			if !eligibility.Valid || eligibleSubtotal <= 0 {
				c.ClearCoupon()
			} else {
				c.SetCoupon(cpn.Code, cpn.CalculateDiscount(eligibleSubtotal))
			}
		}
	}

	c.Recalculate(s.rules)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

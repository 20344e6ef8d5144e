package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/domain/coupon"

	"github.com/google/uuid"
)

// CouponRepository in-memory implementation of the coupon repository
type CouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]*coupon.Coupon
}

// NewCouponRepository creates an empty in-memory coupon repository
func NewCouponRepository() *CouponRepository {
	return &CouponRepository{coupons: make(map[string]*coupon.Coupon)}
}

// NextIdentity generates a new coupon ID
func (r *CouponRepository) NextIdentity() string {
	return "coupon-" + uuid.New().String()
}

func cloneCoupon(c *coupon.Coupon) *coupon.Coupon {
	clone := *c
	if c.UsedBy != nil {
		clone.UsedBy = make(map[string]coupon.Usage, len(c.UsedBy))
		for k, v := range c.UsedBy {
			clone.UsedBy[k] = v
		}
	}
	return &clone
}

// Save stores the coupon, enforcing code uniqueness
func (r *CouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.coupons {
		if existing.ID != c.ID && existing.Code == c.Code {
			return coupon.NewDuplicateCodeError(c.Code)
		}
	}
	r.coupons[c.ID] = cloneCoupon(c)
	return nil
}

// FindByID returns the coupon or coupon.ErrCouponNotFound
func (r *CouponRepository) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.coupons[id]
	if !ok {
		return nil, coupon.NewNotFoundError(id)
	}
	return cloneCoupon(c), nil
}

// FindByCode matches the normalized code
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := coupon.NormalizeCode(code)
	for _, c := range r.coupons {
		if c.Code == normalized {
			return cloneCoupon(c), nil
		}
	}
	return nil, coupon.NewNotFoundError(code)
}

// List returns coupons, newest first
func (r *CouponRepository) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*coupon.Coupon
	for _, c := range r.coupons {
		if activeOnly && !c.IsActive {
			continue
		}
		matched = append(matched, cloneCoupon(c))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// Delete removes the coupon
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[id]; !ok {
		return coupon.NewNotFoundError(id)
	}
	delete(r.coupons, id)
	return nil
}

// RecordUsage bumps the usage counters for the stored coupon
func (r *CouponRepository) RecordUsage(ctx context.Context, couponID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.coupons[couponID]
	if !ok {
		return coupon.NewNotFoundError(couponID)
	}
	c.RecordUsage(userID, time.Now())
	return nil
}

// Snapshot copies the repository state, including per-user usage ledgers,
// for unit of work rollback
func (r *CouponRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*coupon.Coupon, len(r.coupons))
	for id, c := range r.coupons {
		clone := *c
		if c.UsedBy != nil {
			clone.UsedBy = make(map[string]coupon.Usage, len(c.UsedBy))
			for userID, usage := range c.UsedBy {
				clone.UsedBy[userID] = usage
			}
		}
		out[id] = &clone
	}
	return out
}

// Restore puts a snapshot back
func (r *CouponRepository) Restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons = state.(map[string]*coupon.Coupon)
}

// Compile-time interface implementation check
var _ coupon.Repository = (*CouponRepository)(nil)

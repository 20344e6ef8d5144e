package po

import (
	"time"

	"storefront/domain/coupon"
)

// CouponPO Coupon persistence object
// The per-user usage ledger lives in coupon_usages so RecordUsage can run as
// a single atomic statement inside the checkout transaction
type CouponPO struct {
	ID          string  `gorm:"primaryKey;size:64"`
	Code        string  `gorm:"size:64;uniqueIndex;not null"`
	Description string  `gorm:"size:500"`
	Type        string  `gorm:"size:20;not null"`
	Value       float64 `gorm:"not null"`

	ValidFrom  *time.Time `gorm:"index"`
	ValidUntil *time.Time `gorm:"index"`

	MinimumPurchase float64 `gorm:"not null;default:0"`
	MaximumDiscount float64 `gorm:"not null;default:0"`

	UsageLimit   int `gorm:"not null;default:0"`
	PerUserLimit int `gorm:"not null;default:0"`
	TotalUsed    int `gorm:"not null;default:0"`

	AllProducts         bool     `gorm:"not null;default:true"`
	IncludedProductIDs  []string `gorm:"serializer:json"`
	ExcludedProductIDs  []string `gorm:"serializer:json"`
	IncludedCategoryIDs []string `gorm:"serializer:json"`
	ExcludedCategoryIDs []string `gorm:"serializer:json"`

	NewCustomersOnly bool `gorm:"not null;default:false"`

	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CouponPO) TableName() string {
	return "coupons"
}

// CouponUsagePO Per-user coupon usage ledger row
type CouponUsagePO struct {
	CouponID   string    `gorm:"primaryKey;size:64"`
	UserID     string    `gorm:"primaryKey;size:64"`
	Count      int       `gorm:"not null;default:0"`
	LastUsedAt time.Time `gorm:"not null"`
}

// TableName Specify table name
func (CouponUsagePO) TableName() string {
	return "coupon_usages"
}

// FromCouponDomain Convert domain model to persistence object
func FromCouponDomain(c *coupon.Coupon) *CouponPO {
	p := &CouponPO{
		ID:                  c.ID,
		Code:                c.Code,
		Description:         c.Description,
		Type:                string(c.Type),
		Value:               c.Value,
		MinimumPurchase:     c.MinimumPurchase,
		MaximumDiscount:     c.MaximumDiscount,
		UsageLimit:          c.UsageLimit,
		PerUserLimit:        c.PerUserLimit,
		TotalUsed:           c.TotalUsed,
		AllProducts:         c.AllProducts,
		IncludedProductIDs:  c.IncludedProductIDs,
		ExcludedProductIDs:  c.ExcludedProductIDs,
		IncludedCategoryIDs: c.IncludedCategoryIDs,
		ExcludedCategoryIDs: c.ExcludedCategoryIDs,
		NewCustomersOnly:    c.NewCustomersOnly,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if !c.ValidFrom.IsZero() {
		from := c.ValidFrom
		p.ValidFrom = &from
	}
	if !c.ValidUntil.IsZero() {
		until := c.ValidUntil
		p.ValidUntil = &until
	}
	return p
}

// ToDomain Convert persistence object to domain model
func (po *CouponPO) ToDomain(usagePOs []CouponUsagePO) *coupon.Coupon {
	c := &coupon.Coupon{
		ID:                  po.ID,
		Code:                po.Code,
		Description:         po.Description,
		Type:                coupon.Type(po.Type),
		Value:               po.Value,
		MinimumPurchase:     po.MinimumPurchase,
		MaximumDiscount:     po.MaximumDiscount,
		UsageLimit:          po.UsageLimit,
		PerUserLimit:        po.PerUserLimit,
		TotalUsed:           po.TotalUsed,
		AllProducts:         po.AllProducts,
		IncludedProductIDs:  po.IncludedProductIDs,
		ExcludedProductIDs:  po.ExcludedProductIDs,
		IncludedCategoryIDs: po.IncludedCategoryIDs,
		ExcludedCategoryIDs: po.ExcludedCategoryIDs,
		NewCustomersOnly:    po.NewCustomersOnly,
		IsActive:            po.IsActive,
		CreatedAt:           po.CreatedAt,
		UpdatedAt:           po.UpdatedAt,
	}
	if po.ValidFrom != nil {
		c.ValidFrom = *po.ValidFrom
	}
	if po.ValidUntil != nil {
		c.ValidUntil = *po.ValidUntil
	}
	if len(usagePOs) > 0 {
		c.UsedBy = make(map[string]coupon.Usage, len(usagePOs))
		for _, usagePO := range usagePOs {
			c.UsedBy[usagePO.UserID] = coupon.Usage{
				Count:      usagePO.Count,
				LastUsedAt: usagePO.LastUsedAt,
			}
		}
	}
	return c
}

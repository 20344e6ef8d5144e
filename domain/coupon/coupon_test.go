package coupon

import (
	"testing"
	"time"

	"storefront/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon() *Coupon {
	return &Coupon{
		ID:          "coupon-1",
		Code:        "SAVE10",
		Type:        TypePercentage,
		Value:       10,
		AllProducts: true,
		IsActive:    true,
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Coupon)
		ok     bool
	}{
		{"valid", func(c *Coupon) {}, true},
		{"empty code", func(c *Coupon) { c.Code = "  " }, false},
		{"bad type", func(c *Coupon) { c.Type = "bogus" }, false},
		{"zero value", func(c *Coupon) { c.Value = 0 }, false},
		{"percent over 100", func(c *Coupon) { c.Value = 120 }, false},
		{"window inverted", func(c *Coupon) {
			c.ValidFrom = time.Now()
			c.ValidUntil = time.Now().Add(-time.Hour)
		}, false},
		{"negative minimum", func(c *Coupon) { c.MinimumPurchase = -1 }, false},
		{"fixed over 100 ok", func(c *Coupon) { c.Type = TypeFixedAmount; c.Value = 150 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCoupon()
			tc.mutate(c)
			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	now := time.Now()

	c := validCoupon()
	assert.True(t, c.IsValid(now))

	c.IsActive = false
	assert.False(t, c.IsValid(now))

	c = validCoupon()
	c.ValidFrom = now.Add(time.Hour)
	assert.False(t, c.IsValid(now), "not yet started")

	c = validCoupon()
	c.ValidUntil = now.Add(-time.Hour)
	assert.False(t, c.IsValid(now), "expired")

	c = validCoupon()
	c.UsageLimit = 5
	c.TotalUsed = 5
	assert.False(t, c.IsValid(now), "global cap reached")
}

func TestCanBeUsedBy(t *testing.T) {
	now := time.Now()

	c := validCoupon()
	assert.True(t, c.CanBeUsedBy("user-1", 50, 0, now).Valid)

	c.MinimumPurchase = 100
	result := c.CanBeUsedBy("user-1", 50, 0, now)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Reason, "minimum purchase")

	c = validCoupon()
	c.PerUserLimit = 1
	c.UsedBy = map[string]Usage{"user-1": {Count: 1, LastUsedAt: now}}
	assert.False(t, c.CanBeUsedBy("user-1", 50, 0, now).Valid)
	assert.True(t, c.CanBeUsedBy("user-2", 50, 0, now).Valid)

	c = validCoupon()
	c.NewCustomersOnly = true
	assert.False(t, c.CanBeUsedBy("user-1", 50, 3, now).Valid)
	assert.True(t, c.CanBeUsedBy("user-1", 50, 0, now).Valid)
}

func TestCalculateDiscount(t *testing.T) {
	c := validCoupon() // 10 percent
	assert.InDelta(t, 5.0, c.CalculateDiscount(50), 0.001)

	c.MaximumDiscount = 3
	assert.InDelta(t, 3.0, c.CalculateDiscount(50), 0.001)

	fixed := validCoupon()
	fixed.Type = TypeFixedAmount
	fixed.Value = 20
	assert.InDelta(t, 20.0, fixed.CalculateDiscount(50), 0.001)
	// Never more than what is being bought.
	assert.InDelta(t, 15.0, fixed.CalculateDiscount(15), 0.001)
}

func TestAppliesTo(t *testing.T) {
	p := &catalog.Product{ID: "p1", CategoryIDs: []string{"cat-1"}}

	all := validCoupon()
	assert.True(t, all.AppliesTo(p))

	// Exclusions win even with AllProducts.
	all.ExcludedProductIDs = []string{"p1"}
	assert.False(t, all.AppliesTo(p))

	byCategory := validCoupon()
	byCategory.AllProducts = false
	byCategory.IncludedCategoryIDs = []string{"cat-1"}
	assert.True(t, byCategory.AppliesTo(p))

	byCategory.ExcludedCategoryIDs = []string{"cat-1"}
	assert.False(t, byCategory.AppliesTo(p))

	restricted := validCoupon()
	restricted.AllProducts = false
	restricted.IncludedProductIDs = []string{"p2"}
	assert.False(t, restricted.AppliesTo(p))

	// No include sets at all means everything not excluded.
	open := validCoupon()
	open.AllProducts = false
	assert.True(t, open.AppliesTo(p))
}

func TestRecordUsage(t *testing.T) {
	now := time.Now()
	c := validCoupon()

	c.RecordUsage("user-1", now)
	c.RecordUsage("user-1", now)
	c.RecordUsage("user-2", now)

	require.NotNil(t, c.UsedBy)
	assert.Equal(t, 2, c.UsedBy["user-1"].Count)
	assert.Equal(t, 1, c.UsedBy["user-2"].Count)
	assert.Equal(t, 3, c.TotalUsed)
}

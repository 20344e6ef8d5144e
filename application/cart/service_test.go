package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *ApplicationService
	carts    *mocks.CartRepository
	products *mocks.ProductRepository
	coupons  *mocks.CouponRepository
	orders   *mocks.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		carts:    mocks.NewCartRepository(),
		products: mocks.NewProductRepository(),
		coupons:  mocks.NewCouponRepository(),
		orders:   mocks.NewOrderRepository(),
	}
	f.svc = NewApplicationService(
		f.carts, f.products, f.coupons, f.orders, nil,
		cart.PricingRules{TaxRate: 0.1, ShippingFlat: 5, FreeShippingOver: 100},
	)

	require.NoError(t, f.products.Save(ctx, &catalog.Product{
		ID: "p1", Slug: "widget", SKU: "WID-1", Name: "Widget",
		Price: 20, Stock: 5, IsActive: true,
		CategoryIDs: []string{"cat-1"}, CountryID: "c1",
	}))
	require.NoError(t, f.products.Save(ctx, &catalog.Product{
		ID: "p2", Slug: "gadget", SKU: "GAD-1", Name: "Gadget",
		Price: 10, Stock: 10, IsActive: true,
		CategoryIDs: []string{"cat-2"}, CountryID: "c1",
	}))
	return f
}

func (f *fixture) saveCoupon(t *testing.T, cpn *coupon.Coupon) {
	t.Helper()
	if cpn.ValidFrom.IsZero() {
		cpn.ValidFrom = time.Now().Add(-time.Hour)
	}
	if cpn.ValidUntil.IsZero() {
		cpn.ValidUntil = time.Now().Add(time.Hour)
	}
	require.NoError(t, f.coupons.Save(context.Background(), cpn))
}

func TestGetCartCreatesLazily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)

	// The lazily created cart is persisted.
	_, err = f.carts.FindByUserID(ctx, "user-1")
	assert.NoError(t, err)
}

// failingCartRepository reports a storage failure on every lookup
type failingCartRepository struct {
	*mocks.CartRepository
	err error
}

func (r *failingCartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	return nil, r.err
}

func TestGetCartPropagatesStorageErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broken := &failingCartRepository{CartRepository: f.carts, err: errors.New("connection reset")}
	svc := NewApplicationService(
		broken, f.products, f.coupons, f.orders, nil,
		cart.PricingRules{TaxRate: 0.1, ShippingFlat: 5, FreeShippingOver: 100},
	)

	_, err := svc.GetCart(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")

	// The failure did not get papered over with a fresh cart.
	_, err = f.carts.FindByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.InDelta(t, 40.0, c.Subtotal, 0.001)
	assert.InDelta(t, 4.0, c.Tax, 0.001)
	assert.InDelta(t, 5.0, c.ShippingCost, 0.001)
	assert.InDelta(t, 49.0, c.Total, 0.001)
}

func TestAddItemRejectsUnknownAndInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "ghost", Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	p.IsActive = false
	require.NoError(t, f.products.Save(ctx, p))

	_, err = f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestUpdateAndRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	c, err := f.svc.UpdateItemQuantity(ctx, "user-1", "p1", UpdateItemRequest{Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Items[0].Quantity)

	c, err = f.svc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
}

func TestApplyCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "SAVE10", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true,
	})

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	c, err := f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "save10"})
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", c.CouponCode)
	assert.InDelta(t, 4.0, c.CouponDiscount, 0.001)
	assert.InDelta(t, 3.6, c.Tax, 0.001)
}

func TestApplyCouponRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "GHOST"})
	assert.ErrorIs(t, err, coupon.ErrCouponNotFound)

	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-2", Code: "BIG", Type: coupon.TypeFixedAmount, Value: 10,
		MinimumPurchase: 500, AllProducts: true, IsActive: true,
	})
	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "BIG"})
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)

	// A coupon scoped to a category absent from the cart does not attach.
	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-3", Code: "CAT2", Type: coupon.TypePercentage, Value: 10,
		IncludedCategoryIDs: []string{"cat-2"}, IsActive: true,
	})
	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "CAT2"})
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)
}

func TestDiscountRederivedOnMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "SAVE10", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true,
	})

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "SAVE10"})
	require.NoError(t, err)

	c, err := f.svc.UpdateItemQuantity(ctx, "user-1", "p1", UpdateItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, c.CouponDiscount, 0.001)
}

func TestCouponDroppedWhenNoLongerEligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "SPEND30", Type: coupon.TypeFixedAmount, Value: 5,
		MinimumPurchase: 30, AllProducts: true, IsActive: true,
	})

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "SPEND30"})
	require.NoError(t, err)

	// Dropping below the minimum purchase detaches the coupon silently.
	c, err := f.svc.UpdateItemQuantity(ctx, "user-1", "p1", UpdateItemRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Empty(t, c.CouponCode)
	assert.Zero(t, c.CouponDiscount)
}

func TestRemoveCouponAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "SAVE10", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true,
	})

	_, err := f.svc.AddItem(ctx, "user-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.ApplyCoupon(ctx, "user-1", ApplyCouponRequest{Code: "SAVE10"})
	require.NoError(t, err)

	c, err := f.svc.RemoveCoupon(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.CouponCode)
	assert.Zero(t, c.CouponDiscount)

	c, err = f.svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
}

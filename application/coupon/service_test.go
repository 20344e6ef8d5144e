package coupon

import (
	"context"
	"testing"
	"time"

	"storefront/domain/coupon"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *ApplicationService
	coupons *mocks.CouponRepository
	orders  *mocks.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		coupons: mocks.NewCouponRepository(),
		orders:  mocks.NewOrderRepository(),
	}
	f.svc = NewApplicationService(f.coupons, f.orders, nil)
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

func (f *fixture) saveGuestOrder(t *testing.T, id, email string) {
	t.Helper()

	o, err := order.New(order.NewOrderParams{
		ID:          id,
		OrderNumber: "2608-00001",
		Guest:       &order.GuestDetails{Name: "Guest", Email: email},
		Email:       email,
		Items:       []order.Item{{ProductID: "p1", Name: "Widget", Price: 20, Quantity: 1}},
		ShippingAddress: order.Address{
			FullName: "Guest", Line1: "1 Main St", City: "Springfield",
			PostalCode: "12345", Country: "US",
		},
		PaymentMethod: order.PaymentCard,
		PlacedBy:      shared.GuestActor(email),
	})
	require.NoError(t, err)
	require.NoError(t, f.orders.Save(context.Background(), o))
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "SAVE10", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true,
	})

	res, err := f.svc.Validate(context.Background(), "user-1", "save10", 100)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "SAVE10", res.Code)
	assert.InDelta(t, 10.0, res.Discount, 0.001)
}

func TestValidateReportsReason(t *testing.T) {
	f := newFixture(t)
	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "BIG", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true, MinimumPurchase: 500,
	})

	res, err := f.svc.Validate(context.Background(), "user-1", "BIG", 100)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "minimum purchase")
}

func TestValidateTreatsAnonymousAsNewCustomer(t *testing.T) {
	f := newFixture(t)
	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "WELCOME", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true, NewCustomersOnly: true,
	})
	// Guest orders carry no user ID; they must not count against an
	// anonymous shopper validating the code.
	f.saveGuestOrder(t, "order-g1", "someone@example.com")

	res, err := f.svc.Validate(context.Background(), "", "WELCOME", 100)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "WELCOME", res.Code)
}

func TestValidateNewCustomersOnlyRejectsReturningUser(t *testing.T) {
	f := newFixture(t)
	f.saveCoupon(t, &coupon.Coupon{
		ID: "cpn-1", Code: "WELCOME", Type: coupon.TypePercentage, Value: 10,
		AllProducts: true, IsActive: true, NewCustomersOnly: true,
	})

	o, err := order.New(order.NewOrderParams{
		ID:          "order-1",
		OrderNumber: "2608-00002",
		UserID:      "user-1",
		Email:       "jane@example.com",
		Items:       []order.Item{{ProductID: "p1", Name: "Widget", Price: 20, Quantity: 1}},
		ShippingAddress: order.Address{
			FullName: "Jane Doe", Line1: "1 Main St", City: "Springfield",
			PostalCode: "12345", Country: "US",
		},
		PaymentMethod: order.PaymentCard,
		PlacedBy:      shared.UserActor("user-1"),
	})
	require.NoError(t, err)
	require.NoError(t, f.orders.Save(context.Background(), o))

	res, err := f.svc.Validate(context.Background(), "user-1", "WELCOME", 100)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "new customers")
}

func TestValidateUnknownCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Validate(context.Background(), "user-1", "NOPE", 100)
	assert.ErrorIs(t, err, coupon.ErrCouponNotFound)
}

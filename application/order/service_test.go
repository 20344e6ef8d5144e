package order

import (
	"context"
	"testing"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/notification"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc           *ApplicationService
	orders        *mocks.OrderRepository
	products      *mocks.ProductRepository
	carts         *mocks.CartRepository
	coupons       *mocks.CouponRepository
	users         *mocks.UserRepository
	notifications *mocks.NotificationRepository
	uowFactory    *mocks.UnitOfWorkFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		orders:        mocks.NewOrderRepository(),
		products:      mocks.NewProductRepository(),
		carts:         mocks.NewCartRepository(),
		coupons:       mocks.NewCouponRepository(),
		users:         mocks.NewUserRepository(),
		notifications: mocks.NewNotificationRepository(),
	}
	f.uowFactory = mocks.NewUnitOfWorkFactory(f.products, f.carts, f.coupons, f.orders, f.notifications)
	f.svc = NewApplicationService(
		f.orders, f.products, f.carts, f.coupons, f.users, f.notifications,
		f.uowFactory, nil,
		cart.PricingRules{TaxRate: 0.1, ShippingFlat: 5, FreeShippingOver: 100},
	)

	require.NoError(t, f.users.Save(ctx, &user.User{
		ID: "user-1", Name: "Jane", Email: "jane@example.com",
		Role: user.RoleCustomer, IsActive: true,
	}))
	require.NoError(t, f.users.Save(ctx, &user.User{
		ID: "admin-1", Name: "Root", Email: "admin@example.com",
		Role: user.RoleAdmin, IsActive: true,
	}))
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

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: "p1", Price: 20, Quantity: 2},
			{ProductID: "p2", Price: 10, Quantity: 1},
		},
		ShippingAddress: AddressRequest{
			FullName: "Jane Doe", Line1: "1 Main St", City: "Springfield",
			PostalCode: "12345", Country: "US",
		},
		PaymentMethod: "card",
	}
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, "jane@example.com", o.Email)
	assert.InDelta(t, 50.0, o.Subtotal, 0.001)
	assert.InDelta(t, 5.0, o.TaxPrice, 0.001)
	assert.InDelta(t, 5.0, o.ShippingPrice, 0.001)
	assert.InDelta(t, 60.0, o.Total, 0.001)

	now := time.Now().Format("0601")
	assert.Equal(t, now+"-00001", o.OrderNumber)

	// Stock is taken inside the transaction.
	p1, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p1.Stock)

	// The placed event was drained into the unit of work.
	require.Len(t, f.uowFactory.UoW.Events, 1)
	assert.Equal(t, "order.placed", f.uowFactory.UoW.Events[0].EventName())

	// Purchaser and admin both get a notification.
	mine, err := f.notifications.FindByRecipient(ctx, shared.UserActor("user-1"), false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, notification.KindOrderPlaced, mine[0].Kind)

	adminInbox, err := f.notifications.FindByRecipient(ctx, shared.AdminActor("admin-1"), false)
	require.NoError(t, err)
	assert.Len(t, adminInbox, 1)
}

func TestCheckoutRejectsStalePrice(t *testing.T) {
	f := newFixture(t)
	req := checkoutRequest()
	req.Items[0].Price = 18 // client saw an old price

	_, err := f.svc.Checkout(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, order.ErrPriceMismatch)
}

func TestCheckoutRejectsInsufficientStock(t *testing.T) {
	f := newFixture(t)
	req := checkoutRequest()
	req.Items[0].Quantity = 6

	_, err := f.svc.Checkout(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, catalog.ErrOutOfStock)
}

func TestFailedCheckoutTakesNoStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The second line exceeds stock, so the first line's decrement has
	// already been applied when the transaction fails.
	req := checkoutRequest()
	req.Items[1].Quantity = 11

	_, err := f.svc.Checkout(ctx, "user-1", req)
	require.ErrorIs(t, err, catalog.ErrOutOfStock)

	p1, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p1.Stock)

	p2, err := f.products.FindByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 10, p2.Stock)

	// Nothing else from the aborted transaction survives either.
	assert.Empty(t, f.uowFactory.UoW.Events)
	orders, err := f.orders.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutRejectsInactiveProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	p.IsActive = false
	require.NoError(t, f.products.Save(ctx, p))

	_, err = f.svc.Checkout(ctx, "user-1", checkoutRequest())
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGuestCheckout(t *testing.T) {
	f := newFixture(t)
	req := checkoutRequest()
	req.Guest = &GuestRequest{Name: "Guest", Email: "guest@example.com"}

	o, err := f.svc.Checkout(context.Background(), "", req)
	require.NoError(t, err)

	assert.True(t, o.IsGuest())
	assert.Equal(t, "guest@example.com", o.Email)
}

func TestGuestCheckoutRequiresDetails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), "", checkoutRequest())
	assert.Error(t, err)
}

func TestCheckoutClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := cart.New("cart-1", "user-1")
	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(p, 2))
	require.NoError(t, f.carts.Save(ctx, c))

	_, err = f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	c, err = f.carts.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCheckoutWithCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coupons.Save(ctx, &coupon.Coupon{
		ID: "cpn-1", Code: "SAVE10", Type: coupon.TypePercentage, Value: 10,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
		AllProducts: true, IsActive: true,
	}))

	req := checkoutRequest()
	req.CouponCode = "SAVE10"

	o, err := f.svc.Checkout(ctx, "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", o.CouponCode)
	assert.InDelta(t, 5.0, o.CouponDiscount, 0.001)
	// Tax is charged on the discounted subtotal.
	assert.InDelta(t, 4.5, o.TaxPrice, 0.001)
	assert.InDelta(t, 54.5, o.Total, 0.001)

	// Usage is recorded inside the transaction.
	cpn, err := f.coupons.FindByID(ctx, "cpn-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cpn.TotalUsed)
}

func TestCheckoutCouponRestrictedToCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coupons.Save(ctx, &coupon.Coupon{
		ID: "cpn-2", Code: "CAT2", Type: coupon.TypePercentage, Value: 50,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
		IncludedCategoryIDs: []string{"cat-2"}, IsActive: true,
	}))

	req := checkoutRequest()
	req.CouponCode = "CAT2"

	o, err := f.svc.Checkout(ctx, "user-1", req)
	require.NoError(t, err)

	// Only the 10.00 gadget line is eligible.
	assert.InDelta(t, 5.0, o.CouponDiscount, 0.001)
}

func TestCheckoutRejectsIneligibleCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coupons.Save(ctx, &coupon.Coupon{
		ID: "cpn-3", Code: "BIG", Type: coupon.TypeFixedAmount, Value: 10,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
		MinimumPurchase: 500, AllProducts: true, IsActive: true,
	}))

	req := checkoutRequest()
	req.CouponCode = "BIG"

	_, err := f.svc.Checkout(ctx, "user-1", req)
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)

	// The failed attempt must not take stock.
	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestGetHidesForeignOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, shared.UserActor("user-1"), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.svc.Get(ctx, shared.UserActor("someone-else"), o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	// Admins see everything.
	_, err = f.svc.Get(ctx, shared.AdminActor("admin-1"), o.ID)
	assert.NoError(t, err)
}

func TestCancelRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, o.ID, CancelRequest{Reason: "changed my mind"}, shared.UserActor("user-1"))
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)

	// A second cancellation is rejected by the state machine.
	_, err = f.svc.Cancel(ctx, o.ID, CancelRequest{}, shared.UserActor("user-1"))
	assert.ErrorIs(t, err, order.ErrInvalidState)
}

func TestCancelForeignOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, o.ID, CancelRequest{}, shared.UserActor("someone-else"))
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGuestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := checkoutRequest()
	req.Guest = &GuestRequest{Name: "Guest", Email: "guest@example.com"}
	o, err := f.svc.Checkout(ctx, "", req)
	require.NoError(t, err)

	_, err = f.svc.CancelGuest(ctx, GuestCancelRequest{
		OrderNumber: o.OrderNumber, Email: "other@example.com",
	})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	cancelled, err := f.svc.CancelGuest(ctx, GuestCancelRequest{
		OrderNumber: o.OrderNumber, Email: "Guest@Example.com", Reason: "changed my mind",
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "processing"}, shared.AdminActor("admin-1"))
	require.NoError(t, err)
	assert.True(t, updated.IsPaid)

	// Customer gets a status notification.
	mine, err := f.notifications.FindByRecipient(ctx, shared.UserActor("user-1"), false)
	require.NoError(t, err)
	require.NotEmpty(t, mine)
	assert.Equal(t, notification.KindOrderStatus, mine[0].Kind)
}

func TestUpdateStatusToCancelledRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "cancelled", Comment: "fraud"}, shared.AdminActor("admin-1"))
	require.NoError(t, err)

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestTrack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, "user-1", checkoutRequest())
	require.NoError(t, err)

	// Email match is case-insensitive.
	res, err := f.svc.Track(ctx, o.OrderNumber, "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, res.Tracking.OrderNumber)
	assert.Equal(t, 10, res.Tracking.Progress)

	// A wrong email reads as not found.
	_, err = f.svc.Track(ctx, o.OrderNumber, "other@example.com")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

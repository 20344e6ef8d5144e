package order

import (
	"testing"

	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() NewOrderParams {
	return NewOrderParams{
		ID:          "order-1",
		OrderNumber: "2608-00001",
		UserID:      "user-1",
		Email:       "jane@example.com",
		Items: []Item{
			{ProductID: "p1", Name: "Widget", Price: 20, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", Price: 10, Quantity: 1},
		},
		ShippingAddress: Address{
			FullName:   "Jane Doe",
			Line1:      "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "US",
		},
		PaymentMethod: PaymentCard,
		TaxPrice:      5,
		ShippingPrice: 5,
		PlacedBy:      shared.UserActor("user-1"),
	}
}

func TestNewOrder(t *testing.T) {
	o, err := New(validParams())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.InDelta(t, 50.0, o.Subtotal, 0.001)
	assert.InDelta(t, 60.0, o.Total, 0.001)
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, StatusPending, o.StatusHistory[0].Status)
	assert.False(t, o.IsPaid)
	assert.False(t, o.IsGuest())

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventName())
}

func TestNewOrderDiscountReducesTotal(t *testing.T) {
	p := validParams()
	p.CouponCode = "SAVE10"
	p.CouponDiscount = 10

	o, err := New(p)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, o.Total, 0.001)
}

func TestNewOrderValidation(t *testing.T) {
	p := validParams()
	p.Items = nil
	_, err := New(p)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	p = validParams()
	p.UserID = ""
	_, err = New(p)
	assert.Error(t, err, "needs a user or guest")

	p = validParams()
	p.Email = ""
	_, err = New(p)
	assert.Error(t, err)

	p = validParams()
	p.PaymentMethod = "bitcoin"
	_, err = New(p)
	assert.Error(t, err)

	p = validParams()
	p.Items[0].Quantity = 0
	_, err = New(p)
	assert.Error(t, err)
}

func TestGuestOrder(t *testing.T) {
	p := validParams()
	p.UserID = ""
	p.Guest = &GuestDetails{Name: "Guest", Email: "guest@example.com"}
	p.Email = "guest@example.com"
	p.PlacedBy = shared.GuestActor("guest@example.com")

	o, err := New(p)
	require.NoError(t, err)
	assert.True(t, o.IsGuest())
	assert.Equal(t, shared.ActorGuest, o.Purchaser().Kind)
	assert.Equal(t, "guest@example.com", o.Purchaser().ID)
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := New(validParams())
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func admin() shared.Actor { return shared.AdminActor("admin-1") }

func TestUpdateStatusAppendsHistory(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.UpdateStatus(StatusProcessing, "confirmed", admin()))
	require.NoError(t, o.UpdateStatus(StatusShipped, "", admin()))

	assert.Equal(t, StatusShipped, o.Status)
	require.Len(t, o.StatusHistory, 3)
	assert.Equal(t, StatusProcessing, o.StatusHistory[1].Status)
	assert.Equal(t, admin(), o.StatusHistory[1].UpdatedBy)
}

func TestProcessingMarksPaid(t *testing.T) {
	o := newTestOrder(t)
	require.False(t, o.IsPaid)

	require.NoError(t, o.UpdateStatus(StatusProcessing, "", admin()))

	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)
}

func TestDeliveredSetsDeliveryFlags(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.UpdateStatus(StatusDelivered, "", admin()))

	assert.True(t, o.IsDelivered)
	require.NotNil(t, o.DeliveredAt)
}

func TestCancelGuards(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Cancel("changed my mind", shared.UserActor("user-1")))
	assert.Equal(t, StatusCancelled, o.Status)

	// Cancelling twice is rejected.
	err := o.Cancel("again", shared.UserActor("user-1"))
	assert.ErrorIs(t, err, ErrInvalidState)

	delivered := newTestOrder(t)
	require.NoError(t, delivered.UpdateStatus(StatusDelivered, "", admin()))
	assert.ErrorIs(t, delivered.Cancel("too late", admin()), ErrInvalidState)
}

func TestRefundOnlyFromShippedOrDelivered(t *testing.T) {
	o := newTestOrder(t)
	assert.ErrorIs(t, o.UpdateStatus(StatusRefunded, "", admin()), ErrInvalidState)

	require.NoError(t, o.UpdateStatus(StatusShipped, "", admin()))
	assert.NoError(t, o.UpdateStatus(StatusRefunded, "damaged", admin()))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	o := newTestOrder(t)
	assert.Error(t, o.UpdateStatus("teleported", "", admin()))
}

func TestStatusEventsRecorded(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.UpdateStatus(StatusProcessing, "", admin()))
	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.status_changed", events[0].EventName())

	require.NoError(t, o.Cancel("", admin()))
	events = o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.cancelled", events[0].EventName())
}

func TestTrackingProjection(t *testing.T) {
	o := newTestOrder(t)

	info := o.Tracking()
	assert.Equal(t, 10, info.Progress)
	assert.Equal(t, o.OrderNumber, info.OrderNumber)

	require.NoError(t, o.UpdateStatus(StatusProcessing, "", admin()))
	assert.Equal(t, 30, o.Tracking().Progress)

	require.NoError(t, o.UpdateStatus(StatusShipped, "", admin()))
	assert.Equal(t, 70, o.Tracking().Progress)

	require.NoError(t, o.UpdateStatus(StatusDelivered, "", admin()))
	info = o.Tracking()
	assert.Equal(t, 100, info.Progress)
	assert.True(t, info.IsDelivered)

	cancelled := newTestOrder(t)
	require.NoError(t, cancelled.Cancel("", admin()))
	assert.Equal(t, 0, cancelled.Tracking().Progress)
}

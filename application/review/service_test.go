package review

import (
	"context"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *ApplicationService
	reviews  *mocks.ReviewRepository
	products *mocks.ProductRepository
	orders   *mocks.OrderRepository
}

func newFixture(t *testing.T, autoApprove bool) *fixture {
	t.Helper()

	f := &fixture{
		reviews:  mocks.NewReviewRepository(),
		products: mocks.NewProductRepository(),
		orders:   mocks.NewOrderRepository(),
	}
	f.svc = NewApplicationService(f.reviews, f.products, f.orders, autoApprove)

	require.NoError(t, f.products.Save(context.Background(), &catalog.Product{
		ID: "p1", Slug: "widget", SKU: "WID-1", Name: "Widget",
		Price: 20, Stock: 5, IsActive: true,
		CategoryIDs: []string{"cat-1"}, CountryID: "c1",
	}))
	return f
}

// saveDeliveredOrder records a delivered order for userID containing p1 so a
// later review carries the verified-purchase badge.
func (f *fixture) saveDeliveredOrder(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()

	o, err := order.New(order.NewOrderParams{
		ID:          f.orders.NextIdentity(),
		OrderNumber: "2608-00099",
		UserID:      userID,
		Email:       userID + "@example.com",
		Items:       []order.Item{{ProductID: "p1", Name: "Widget", Price: 20, Quantity: 1}},
		ShippingAddress: order.Address{
			FullName: "Jane", Line1: "1 Main St", City: "Springfield",
			PostalCode: "12345", Country: "US",
		},
		PaymentMethod: order.PaymentCard,
		PlacedBy:      shared.UserActor(userID),
	})
	require.NoError(t, err)
	require.NoError(t, o.UpdateStatus(order.StatusDelivered, "", shared.AdminActor("admin-1")))
	require.NoError(t, f.orders.Save(ctx, o))
}

func createRequest() CreateReviewRequest {
	return CreateReviewRequest{
		ProductID: "p1",
		Rating:    4,
		Title:     "Solid",
		Comment:   "Does what it says.",
	}
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	assert.True(t, r.IsApproved)
	assert.False(t, r.IsVerifiedPurchase)

	// An approved review feeds the product aggregate immediately.
	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.Rating, 0.001)
	assert.Equal(t, 1, p.RatingCount)
}

func TestCreateReviewVerifiedPurchase(t *testing.T) {
	f := newFixture(t, true)
	f.saveDeliveredOrder(t, "user-1")

	r, err := f.svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	assert.True(t, r.IsVerifiedPurchase)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "user-1", createRequest())
	assert.ErrorIs(t, err, review.ErrDuplicateReview)

	// A different user may still review the product.
	_, err = f.svc.Create(ctx, "user-2", createRequest())
	assert.NoError(t, err)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	f := newFixture(t, true)
	req := createRequest()
	req.ProductID = "ghost"

	_, err := f.svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestModerationFlow(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	assert.False(t, r.IsApproved)

	// Pending reviews do not feed the aggregate.
	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, p.Rating)

	approved, err := f.svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	p, err = f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.Rating, 0.001)

	// Public product listing hides the second, still pending review.
	_, err = f.svc.Create(ctx, "user-2", createRequest())
	require.NoError(t, err)

	listed, err := f.svc.ListByProduct(ctx, "p1", true)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestUpdateDropsApprovalUnderModeration(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, r.ID)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, "user-1", r.ID, UpdateReviewRequest{Rating: 2, Title: "Broke"})
	require.NoError(t, err)
	assert.False(t, updated.IsApproved)

	// The edit removed the only approved review, resetting the aggregate.
	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.RatingCount)
}

func TestUpdateRejectsForeignReview(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "someone-else", r.ID, UpdateReviewRequest{Rating: 1, Title: "Bad"})
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}

func TestDeleteRecomputesAggregate(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	r1, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)
	req := createRequest()
	req.Rating = 2
	_, err = f.svc.Create(ctx, "user-2", req)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, shared.UserActor("user-1"), r1.ID))

	p, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.Rating, 0.001)
	assert.Equal(t, 1, p.RatingCount)
}

func TestDeleteForeignReview(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	err = f.svc.Delete(ctx, shared.UserActor("someone-else"), r.ID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)

	// Admins may delete any review.
	assert.NoError(t, f.svc.Delete(ctx, shared.AdminActor("admin-1"), r.ID))
}

func TestVoting(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	voted, err := f.svc.VoteHelpful(ctx, "voter-1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.HelpfulCount())

	voted, err = f.svc.VoteNotHelpful(ctx, "voter-1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, voted.HelpfulCount())
	assert.Equal(t, 1, voted.NotHelpfulCount())
}

func TestReportAndModerationQueue(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, "user-1", createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Report(ctx, r.ID, ReportRequest{Reason: "spam"}))

	queue, err := f.svc.ListForModeration(ctx, true)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.True(t, queue[0].Reported)

	// Approving clears the report flag.
	approved, err := f.svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, approved.Reported)
	assert.Empty(t, approved.ReportReason)
}

/*
Package order Application Layer - checkout and order lifecycle orchestration.

Checkout is the one flow that touches almost everything: it verifies submitted
prices against the live catalog, takes stock atomically, consumes the coupon,
clears the cart and writes the order with its first history entry, all inside
a single unit of work. Domain events recorded on the order aggregate are
drained into the outbox in the same transaction. Notifications to the
purchaser and the administrators are written in the same transaction as well.

An optional idempotency key protects clients that retry checkout after a
network timeout: the second attempt gets the order the first one created.
*/
package order

import (
	"context"
	"math"
	"strings"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/notification"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/cache"
)

// priceEpsilon is the tolerance when comparing a submitted item price with the
// live effective price. Float money survives one cent of rounding noise.
const priceEpsilon = 0.01

// ApplicationService coordinates order business processes
type ApplicationService struct {
	orderRepo        order.Repository
	productRepo      catalog.ProductRepository
	cartRepo         cart.Repository
	couponRepo       coupon.Repository
	userRepo         user.Repository
	notificationRepo notification.Repository
	uowFactory       shared.UnitOfWorkFactory
	cache            *cache.Cache
	rules            cart.PricingRules
}

// NewApplicationService Create order application service.
// cache may be nil; idempotency keys are then accepted but not enforced.
func NewApplicationService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	cartRepo cart.Repository,
	couponRepo coupon.Repository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	uowFactory shared.UnitOfWorkFactory,
	c *cache.Cache,
	rules cart.PricingRules,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		couponRepo:       couponRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		uowFactory:       uowFactory,
		cache:            c,
		rules:            rules,
	}
}

// CheckoutItem is one submitted line. Price is what the client saw; checkout
// rejects the order when it no longer matches the live effective price.
type CheckoutItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// AddressRequest Shipping address request DTO
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

func (r AddressRequest) toDomain() order.Address {
	return order.Address{
		FullName:   r.FullName,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Phone:      r.Phone,
	}
}

// GuestRequest identifies a guest purchaser at checkout
type GuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// CheckoutRequest Place order request DTO.
// Guest is required when the request is not authenticated.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string         `json:"payment_method" binding:"required"`
	CouponCode      string         `json:"coupon_code"`
	Guest           *GuestRequest  `json:"guest"`
	IdempotencyKey  string         `json:"idempotency_key"`
}

// UpdateStatusRequest Admin status transition request DTO
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// CancelRequest Cancel order request DTO
type CancelRequest struct {
	Reason string `json:"reason"`
}

// GuestCancelRequest Guest cancel request DTO, keyed by number plus email
type GuestCancelRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Reason      string `json:"reason"`
}

// OrderPage Paginated order listing
type OrderPage struct {
	Orders   []*order.Order `json:"orders"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Checkout places an order. userID is empty for guest checkout, in which case
// req.Guest must be present.
func (s *ApplicationService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*order.Order, error) {
	guest, email, err := s.resolvePurchaser(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	orderID := s.orderRepo.NextIdentity()
	if req.IdempotencyKey != "" {
		existingID, err := s.cache.ClaimIdempotencyKey(ctx, req.IdempotencyKey, orderID)
		if err != nil {
			return nil, err
		}
		if existingID != "" {
			return s.orderRepo.FindByID(ctx, existingID)
		}
	}

	o, err := s.placeOrder(ctx, orderID, userID, guest, email, req)
	if err != nil {
		s.cache.ReleaseIdempotencyKey(ctx, req.IdempotencyKey)
		return nil, err
	}
	if req.CouponCode != "" {
		s.cache.InvalidateCoupon(ctx, req.CouponCode)
	}
	return o, nil
}

func (s *ApplicationService) resolvePurchaser(ctx context.Context, userID string, req CheckoutRequest) (*order.GuestDetails, string, error) {
	if userID != "" {
		u, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, "", err
		}
		return nil, u.Email, nil
	}
	if req.Guest == nil {
		return nil, "", order.NewValidationError("guest", "guest details are required for guest checkout")
	}
	guest := &order.GuestDetails{
		Name:  req.Guest.Name,
		Email: req.Guest.Email,
		Phone: req.Guest.Phone,
	}
	return guest, guest.Email, nil
}

// verifyItems builds order line snapshots from the submitted items, rejecting
// inactive products and stale prices. Stock is not checked here; the guarded
// decrement inside the transaction is authoritative.
func (s *ApplicationService) verifyItems(ctx context.Context, submitted []CheckoutItem) ([]order.Item, []*catalog.Product, error) {
	items := make([]order.Item, 0, len(submitted))
	products := make([]*catalog.Product, 0, len(submitted))

	for _, line := range submitted {
		p, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if !p.IsActive {
			return nil, nil, catalog.NewProductNotFoundError(line.ProductID)
		}
		current := p.EffectivePrice()
		if math.Abs(line.Price-current) > priceEpsilon {
			return nil, nil, order.NewPriceMismatchError(p.ID, line.Price, current)
		}

		items = append(items, order.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     current,
			Quantity:  line.Quantity,
		})
		products = append(products, p)
	}
	return items, products, nil
}

// applyCoupon validates the coupon for this checkout and returns it with the
// discount computed over the eligible lines.
func (s *ApplicationService) applyCoupon(ctx context.Context, userID, code string, items []order.Item, products []*catalog.Product) (*coupon.Coupon, float64, error) {
	cpn := s.cache.GetCoupon(ctx, code)
	if cpn == nil {
		var err error
		cpn, err = s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, 0, err
		}
	}

	// Guests have no order history; the new-customer restriction treats them
	// as new.
	var priorOrders int64
	if userID != "" {
		var err error
		priorOrders, err = s.orderRepo.CountByUser(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
	}

	subtotal := 0.0
	eligibleSubtotal := 0.0
	for i, item := range items {
		subtotal += item.Subtotal()
		if cpn.AppliesTo(products[i]) {
			eligibleSubtotal += item.Subtotal()
		}
	}

	eligibility := cpn.CanBeUsedBy(userID, subtotal, priorOrders, time.Now())
	if !eligibility.Valid {
		return nil, 0, coupon.NewInvalidCouponError(eligibility.Reason)
	}
	if eligibleSubtotal <= 0 {
		return nil, 0, coupon.NewInvalidCouponError("coupon does not apply to any item in the order")
	}
	return cpn, cpn.CalculateDiscount(eligibleSubtotal), nil
}

func (s *ApplicationService) placeOrder(ctx context.Context, orderID, userID string, guest *order.GuestDetails, email string, req CheckoutRequest) (*order.Order, error) {
	items, products, err := s.verifyItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	var cpn *coupon.Coupon
	discount := 0.0
	if req.CouponCode != "" {
		couponUser := userID
		if couponUser == "" {
			couponUser = email
		}
		cpn, discount, err = s.applyCoupon(ctx, couponUser, req.CouponCode, items, products)
		if err != nil {
			return nil, err
		}
	}

	taxable := subtotal - discount
	tax := taxable * s.rules.TaxRate
	shipping := s.rules.ShippingFlat
	if s.rules.FreeShippingOver > 0 && subtotal >= s.rules.FreeShippingOver {
		shipping = 0
	}

	placedBy := shared.UserActor(userID)
	if guest != nil {
		placedBy = shared.GuestActor(email)
	}
	couponCode := ""
	if cpn != nil {
		couponCode = cpn.Code
	}

	var placed *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		for _, item := range items {
			if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		orderNumber, err := s.orderRepo.NextOrderNumber(ctx, time.Now())
		if err != nil {
			return err
		}

		o, err := order.New(order.NewOrderParams{
			ID:              orderID,
			OrderNumber:     orderNumber,
			UserID:          userID,
			Guest:           guest,
			Email:           email,
			Items:           items,
			ShippingAddress: req.ShippingAddress.toDomain(),
			PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
			TaxPrice:        tax,
			ShippingPrice:   shipping,
			CouponCode:      couponCode,
			CouponDiscount:  discount,
			PlacedBy:        placedBy,
		})
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		if cpn != nil {
			couponUser := userID
			if couponUser == "" {
				couponUser = email
			}
			if err := s.couponRepo.RecordUsage(ctx, cpn.ID, couponUser); err != nil {
				return err
			}
		}

		if userID != "" {
			if err := s.clearCart(ctx, userID); err != nil {
				return err
			}
		}

		if err := s.notifyPlaced(ctx, o); err != nil {
			return err
		}

		uow.Register(o)
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *ApplicationService) clearCart(ctx context.Context, userID string) error {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		// No cart means nothing to clear; checkout can submit items directly.
		return nil
	}
	c.Clear()
	c.Recalculate(s.rules)
	return s.cartRepo.Save(ctx, c)
}

// Get returns an order, restricted to its purchaser unless the actor is an
// admin. Foreign orders read as not found.
func (s *ApplicationService) Get(ctx context.Context, actor shared.Actor, id string) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Kind != shared.ActorAdmin && o.UserID != actor.ID {
		return nil, order.NewNotFoundError(id)
	}
	return o, nil
}

// ListMine returns the authenticated user's orders, newest first
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]*order.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

// List returns orders matching the filter, for the admin surface
func (s *ApplicationService) List(ctx context.Context, filter order.ListFilter) (*OrderPage, error) {
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return &OrderPage{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateStatus transitions an order, admin surface. Stock held by the order is
// restored when the transition lands on cancelled.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest, actor shared.Actor) (*order.Order, error) {
	var updated *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		newStatus := order.Status(req.Status)
		if err := o.UpdateStatus(newStatus, req.Comment, actor); err != nil {
			return err
		}
		if newStatus == order.StatusCancelled {
			if err := s.restoreStock(ctx, o); err != nil {
				return err
			}
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.notifyStatusChange(ctx, o); err != nil {
			return err
		}

		uow.Register(o)
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel cancels an order on behalf of its purchaser or an admin
func (s *ApplicationService) Cancel(ctx context.Context, id string, req CancelRequest, actor shared.Actor) (*order.Order, error) {
	var cancelled *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if actor.Kind != shared.ActorAdmin && o.UserID != actor.ID {
			return order.NewNotFoundError(id)
		}

		if err := o.Cancel(req.Reason, actor); err != nil {
			return err
		}
		if err := s.restoreStock(ctx, o); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.notifyCancelled(ctx, o, actor); err != nil {
			return err
		}

		uow.Register(o)
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// CancelGuest cancels a guest order identified by number plus email. Like
// tracking, an email mismatch reads as not found.
func (s *ApplicationService) CancelGuest(ctx context.Context, req GuestCancelRequest) (*order.Order, error) {
	var cancelled *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByNumber(ctx, req.OrderNumber)
		if err != nil {
			return err
		}
		if !strings.EqualFold(o.Email, strings.TrimSpace(req.Email)) {
			return order.NewNotFoundError(req.OrderNumber)
		}

		actor := shared.GuestActor(o.Email)
		if err := o.Cancel(req.Reason, actor); err != nil {
			return err
		}
		if err := s.restoreStock(ctx, o); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.notifyCancelled(ctx, o, actor); err != nil {
			return err
		}

		uow.Register(o)
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *ApplicationService) restoreStock(ctx context.Context, o *order.Order) error {
	for _, item := range o.Items {
		if err := s.productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// TrackResponse Public order tracking response DTO
type TrackResponse struct {
	Tracking  order.TrackingInfo `json:"tracking"`
	Items     []order.Item       `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

// Track returns the tracking projection for an order number. The email must
// match the purchaser email; a mismatch reads as not found so order numbers
// cannot be probed.
func (s *ApplicationService) Track(ctx context.Context, orderNumber, email string) (*TrackResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(o.Email, strings.TrimSpace(email)) {
		return nil, order.NewNotFoundError(orderNumber)
	}
	return &TrackResponse{
		Tracking:  o.Tracking(),
		Items:     o.Items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}, nil
}

// ============================================================================
// Notification fan-out
// ============================================================================

func (s *ApplicationService) notifyPlaced(ctx context.Context, o *order.Order) error {
	n := notification.New(
		s.notificationRepo.NextIdentity(),
		o.Purchaser(),
		notification.KindOrderPlaced,
		"Order placed",
		"Your order "+o.OrderNumber+" has been placed.",
		o.ID,
	)
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return err
	}
	return s.notifyAdmins(ctx, notification.KindOrderPlaced, "New order",
		"Order "+o.OrderNumber+" was placed.", o.ID)
}

func (s *ApplicationService) notifyStatusChange(ctx context.Context, o *order.Order) error {
	n := notification.New(
		s.notificationRepo.NextIdentity(),
		o.Purchaser(),
		notification.KindOrderStatus,
		"Order "+string(o.Status),
		"Your order "+o.OrderNumber+" is now "+string(o.Status)+".",
		o.ID,
	)
	return s.notificationRepo.Save(ctx, n)
}

func (s *ApplicationService) notifyCancelled(ctx context.Context, o *order.Order, actor shared.Actor) error {
	n := notification.New(
		s.notificationRepo.NextIdentity(),
		o.Purchaser(),
		notification.KindOrderCancel,
		"Order cancelled",
		"Your order "+o.OrderNumber+" has been cancelled.",
		o.ID,
	)
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return err
	}
	if actor.Kind == shared.ActorAdmin {
		return nil
	}
	return s.notifyAdmins(ctx, notification.KindOrderCancel, "Order cancelled",
		"Order "+o.OrderNumber+" was cancelled by the customer.", o.ID)
}

func (s *ApplicationService) notifyAdmins(ctx context.Context, kind notification.Kind, title, message, reference string) error {
	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		n := notification.New(
			s.notificationRepo.NextIdentity(),
			shared.AdminActor(admin.ID),
			kind,
			title,
			message,
			reference,
		)
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

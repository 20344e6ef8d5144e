/*
Package order implements the order lifecycle.

An order is an immutable snapshot of what was bought: line items carry the
name, image and unit price captured at purchase time and are decoupled from
the live product. The status enum is mirrored into an append-only status
history; every transition appends one entry with the acting party.

Transition rules (everything else is accepted, including skipped states, which
keeps the admin surface permissive on purpose):
  - cancellation is rejected once the order is delivered, refunded or cancelled
  - refund is only permitted from delivered or shipped
  - delivered sets the delivery flag and timestamp
  - processing marks an unpaid order paid
*/
package order

import (
	"time"

	"storefront/domain/shared"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// KnownStatus reports whether s is part of the enum
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// PaymentMethod is the payment option captured at checkout.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCard           PaymentMethod = "card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// KnownPaymentMethod reports whether m is part of the enum
func KnownPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

// Item is an immutable order line snapshot.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"` // unit price at purchase time
	Quantity  int     `json:"quantity"`
}

// Subtotal returns price x quantity for this line
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// GuestDetails identifies a guest purchaser.
type GuestDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Address is the shipping destination snapshot.
type Address struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// StatusChange is one entry of the append-only audit trail.
type StatusChange struct {
	Status    Status       `json:"status"`
	Comment   string       `json:"comment,omitempty"`
	UpdatedBy shared.Actor `json:"updated_by"`
	At        time.Time    `json:"at"`
}

// Order is the order aggregate.
type Order struct {
	shared.EventRecorder `json:"-"`

	ID          string `json:"id"`
	OrderNumber string `json:"order_number"` // YYMM-#####

	// UserID is empty for guest orders; Guest is nil for registered users.
	UserID string        `json:"user_id,omitempty"`
	Guest  *GuestDetails `json:"guest,omitempty"`
	Email  string        `json:"email"` // purchaser email, user or guest

	Items           []Item        `json:"items"`
	ShippingAddress Address       `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`

	Subtotal       float64 `json:"subtotal"`
	TaxPrice       float64 `json:"tax_price"`
	ShippingPrice  float64 `json:"shipping_price"`
	CouponCode     string  `json:"coupon_code,omitempty"`
	CouponDiscount float64 `json:"coupon_discount"`
	Total          float64 `json:"total"` // subtotal + tax + shipping - discount

	IsPaid      bool       `json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	IsDelivered bool       `json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	Status        Status         `json:"status"`
	StatusHistory []StatusChange `json:"status_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrderParams carries everything New needs. Items must already be verified
// against the live catalog (price match, stock) by the caller.
type NewOrderParams struct {
	ID              string
	OrderNumber     string
	UserID          string
	Guest           *GuestDetails
	Email           string
	Items           []Item
	ShippingAddress Address
	PaymentMethod   PaymentMethod
	TaxPrice        float64
	ShippingPrice   float64
	CouponCode      string
	CouponDiscount  float64
	PlacedBy        shared.Actor
}

// New creates an order in pending state with its first history entry.
func New(p NewOrderParams) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, NewEmptyOrderError()
	}
	if p.UserID == "" && p.Guest == nil {
		return nil, NewValidationError("user_id", "order needs a user or guest details")
	}
	if p.Email == "" {
		return nil, NewValidationError("email", "purchaser email is required")
	}
	if !KnownPaymentMethod(p.PaymentMethod) {
		return nil, NewValidationError("payment_method", "unknown payment method")
	}
	for _, item := range p.Items {
		if item.Quantity <= 0 {
			return nil, NewValidationError("items", "item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, NewValidationError("items", "item price must not be negative")
		}
	}

	subtotal := 0.0
	for _, item := range p.Items {
		subtotal += item.Subtotal()
	}

	now := time.Now()
	o := &Order{
		ID:              p.ID,
		OrderNumber:     p.OrderNumber,
		UserID:          p.UserID,
		Guest:           p.Guest,
		Email:           p.Email,
		Items:           p.Items,
		ShippingAddress: p.ShippingAddress,
		PaymentMethod:   p.PaymentMethod,
		Subtotal:        subtotal,
		TaxPrice:        p.TaxPrice,
		ShippingPrice:   p.ShippingPrice,
		CouponCode:      p.CouponCode,
		CouponDiscount:  p.CouponDiscount,
		Total:           subtotal + p.TaxPrice + p.ShippingPrice - p.CouponDiscount,
		Status:          StatusPending,
		StatusHistory: []StatusChange{{
			Status:    StatusPending,
			Comment:   "order placed",
			UpdatedBy: p.PlacedBy,
			At:        now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	o.Record(NewPlacedEvent(o))
	return o, nil
}

// IsGuest reports whether the order was placed without an account
func (o *Order) IsGuest() bool {
	return o.UserID == "" && o.Guest != nil
}

// Purchaser returns the actor reference for the buyer
func (o *Order) Purchaser() shared.Actor {
	if o.IsGuest() {
		return shared.GuestActor(o.Guest.Email)
	}
	return shared.UserActor(o.UserID)
}

// CanCancel reports whether cancellation is still possible
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusDelivered, StatusRefunded, StatusCancelled:
		return false
	}
	return true
}

// UpdateStatus transitions the order and appends a history entry.
// Side effects: delivered sets IsDelivered/DeliveredAt; processing marks an
// unpaid order paid; cancelled and refunded go through their guards.
func (o *Order) UpdateStatus(newStatus Status, comment string, actor shared.Actor) error {
	if !KnownStatus(newStatus) {
		return NewValidationError("status", "unknown status: "+string(newStatus))
	}

	switch newStatus {
	case StatusCancelled:
		if !o.CanCancel() {
			return NewInvalidStateError(o.Status, newStatus)
		}
	case StatusRefunded:
		if o.Status != StatusDelivered && o.Status != StatusShipped {
			return NewInvalidStateError(o.Status, newStatus)
		}
	}

	now := time.Now()
	previous := o.Status
	o.Status = newStatus
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status:    newStatus,
		Comment:   comment,
		UpdatedBy: actor,
		At:        now,
	})

	switch newStatus {
	case StatusDelivered:
		o.IsDelivered = true
		o.DeliveredAt = &now
	case StatusProcessing:
		if !o.IsPaid {
			o.IsPaid = true
			o.PaidAt = &now
		}
	}

	o.UpdatedAt = now
	if newStatus == StatusCancelled {
		o.Record(NewCancelledEvent(o, comment))
	} else {
		o.Record(NewStatusChangedEvent(o, previous, newStatus))
	}
	return nil
}

// Cancel is the cancellation entry point for purchasers and admins
func (o *Order) Cancel(comment string, actor shared.Actor) error {
	if comment == "" {
		comment = "order cancelled"
	}
	return o.UpdateStatus(StatusCancelled, comment, actor)
}

/*
Package cart implements the per-user shopping cart.

A cart is created lazily on first access and holds snapshot line items. The
derived fields (item/quantity counts, subtotal, tax, shipping, total) are never
authoritative: every mutation recomputes them from the line items before the
cart is persisted.

Pricing policy: line items are repriced to the product's current effective
price on every add or quantity update ("live pricing"); an item added at 20.00
will show the new price after the product goes on sale and the cart is touched
again.
*/
package cart

import (
	"time"

	"storefront/domain/catalog"
)

// PricingRules are the storefront-wide knobs used to derive cart totals.
type PricingRules struct {
	TaxRate          float64 // applied to the discounted subtotal
	ShippingFlat     float64
	FreeShippingOver float64 // 0 disables free shipping
}

// Item is a snapshot line item.
type Item struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price"` // unit price at time of add / last reprice
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Subtotal returns price x quantity for this line
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the mutable per-user item collection, one per user.
type Cart struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Items  []Item `json:"items"`

	// Derived fields, recomputed by Recalculate on every mutation.
	TotalItems    int     `json:"total_items"`
	TotalQuantity int     `json:"total_quantity"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ShippingCost  float64 `json:"shipping_cost"`
	Total         float64 `json:"total"`

	// CouponDiscount is the absolute discount amount. It is re-derived from
	// the attached coupon whenever the cart changes, so it cannot go stale.
	CouponCode     string  `json:"coupon_code,omitempty"`
	CouponDiscount float64 `json:"coupon_discount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for a user
func New(id, userID string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Find returns the line item for a product, or nil
func (c *Cart) Find(productID string) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem adds quantity units of a product, merging with an existing line.
// The merged line is repriced to the product's current effective price.
// Fails with catalog.ErrOutOfStock when existing+requested exceeds stock.
func (c *Cart) AddItem(p *catalog.Product, quantity int) error {
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}

	existing := 0
	if item := c.Find(p.ID); item != nil {
		existing = item.Quantity
	}
	if !p.HasStock(existing + quantity) {
		return catalog.NewOutOfStockError(p.ID, existing+quantity, p.Stock)
	}

	if item := c.Find(p.ID); item != nil {
		item.Quantity += quantity
		item.Price = p.EffectivePrice()
	} else {
		c.Items = append(c.Items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.EffectivePrice(),
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	return nil
}

// UpdateItemQuantity sets the quantity of an existing line and reprices it.
// Fails with ErrItemNotFound when the product is not in the cart and with
// catalog.ErrOutOfStock when the new quantity exceeds stock.
func (c *Cart) UpdateItemQuantity(p *catalog.Product, quantity int) error {
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}

	item := c.Find(p.ID)
	if item == nil {
		return NewItemNotFoundError(p.ID)
	}
	if !p.HasStock(quantity) {
		return catalog.NewOutOfStockError(p.ID, quantity, p.Stock)
	}

	item.Quantity = quantity
	item.Price = p.EffectivePrice()
	return nil
}

// RemoveItem drops a line item
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return NewItemNotFoundError(productID)
}

// Clear empties the cart and detaches any coupon
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.CouponCode = ""
	c.CouponDiscount = 0
}

// SetCoupon attaches a coupon with its computed absolute discount
func (c *Cart) SetCoupon(code string, discount float64) {
	c.CouponCode = code
	c.CouponDiscount = discount
}

// ClearCoupon detaches the coupon. No-op when none is attached.
func (c *Cart) ClearCoupon() {
	c.CouponCode = ""
	c.CouponDiscount = 0
}

// RawSubtotal returns sum of price x quantity without touching derived fields
func (c *Cart) RawSubtotal() float64 {
	sum := 0.0
	for _, item := range c.Items {
		sum += item.Subtotal()
	}
	return sum
}

// Recalculate recomputes every derived field from the line items.
// Invariants after return:
//
//	subtotal = sum of item.price x item.quantity
//	total    = subtotal - coupon discount + tax + shipping
func (c *Cart) Recalculate(rules PricingRules) {
	c.TotalItems = len(c.Items)
	c.TotalQuantity = 0
	for _, item := range c.Items {
		c.TotalQuantity += item.Quantity
	}

	c.Subtotal = c.RawSubtotal()

	// A discount can never exceed what is being bought.
	if c.CouponDiscount > c.Subtotal {
		c.CouponDiscount = c.Subtotal
	}

	taxable := c.Subtotal - c.CouponDiscount
	c.Tax = taxable * rules.TaxRate

	switch {
	case len(c.Items) == 0:
		c.ShippingCost = 0
	case rules.FreeShippingOver > 0 && c.Subtotal >= rules.FreeShippingOver:
		c.ShippingCost = 0
	default:
		c.ShippingCost = rules.ShippingFlat
	}

	c.Total = c.Subtotal - c.CouponDiscount + c.Tax + c.ShippingCost
	c.UpdatedAt = time.Now()
}

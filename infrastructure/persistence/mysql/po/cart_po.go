package po

import (
	"time"

	"storefront/domain/cart"
)

// CartPO Cart persistence object
// Line items are stored as a JSON column; a cart is always loaded and saved
// whole, so a child table buys nothing here
type CartPO struct {
	ID             string      `gorm:"primaryKey;size:64"`
	UserID         string      `gorm:"size:64;uniqueIndex;not null"`
	Items          []cart.Item `gorm:"serializer:json"`
	TotalItems     int         `gorm:"not null;default:0"`
	TotalQuantity  int         `gorm:"not null;default:0"`
	Subtotal       float64     `gorm:"not null;default:0"`
	Tax            float64     `gorm:"not null;default:0"`
	ShippingCost   float64     `gorm:"not null;default:0"`
	Total          float64     `gorm:"not null;default:0"`
	CouponCode     string      `gorm:"size:64"`
	CouponDiscount float64     `gorm:"not null;default:0"`
	CreatedAt      time.Time   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CartPO) TableName() string {
	return "carts"
}

// FromCartDomain Convert domain model to persistence object
func FromCartDomain(c *cart.Cart) *CartPO {
	return &CartPO{
		ID:             c.ID,
		UserID:         c.UserID,
		Items:          c.Items,
		TotalItems:     c.TotalItems,
		TotalQuantity:  c.TotalQuantity,
		Subtotal:       c.Subtotal,
		Tax:            c.Tax,
		ShippingCost:   c.ShippingCost,
		Total:          c.Total,
		CouponCode:     c.CouponCode,
		CouponDiscount: c.CouponDiscount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *CartPO) ToDomain() *cart.Cart {
	items := po.Items
	if items == nil {
		items = []cart.Item{}
	}
	return &cart.Cart{
		ID:             po.ID,
		UserID:         po.UserID,
		Items:          items,
		TotalItems:     po.TotalItems,
		TotalQuantity:  po.TotalQuantity,
		Subtotal:       po.Subtotal,
		Tax:            po.Tax,
		ShippingCost:   po.ShippingCost,
		Total:          po.Total,
		CouponCode:     po.CouponCode,
		CouponDiscount: po.CouponDiscount,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

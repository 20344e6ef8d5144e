package po

import (
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID          string `gorm:"primaryKey;size:64"`
	OrderNumber string `gorm:"size:20;uniqueIndex;not null"`

	UserID     string `gorm:"size:64;index"`
	GuestName  string `gorm:"size:255"`
	GuestEmail string `gorm:"size:255"`
	GuestPhone string `gorm:"size:50"`
	Email      string `gorm:"size:255;index;not null"`

	ShippingAddress order.Address `gorm:"serializer:json"`
	PaymentMethod   string        `gorm:"size:30;not null"`

	Subtotal       float64 `gorm:"not null"`
	TaxPrice       float64 `gorm:"not null;default:0"`
	ShippingPrice  float64 `gorm:"not null;default:0"`
	CouponCode     string  `gorm:"size:64"`
	CouponDiscount float64 `gorm:"not null;default:0"`
	Total          float64 `gorm:"not null"`

	IsPaid      bool       `gorm:"not null;default:false"`
	PaidAt      *time.Time ``
	IsDelivered bool       `gorm:"not null;default:false"`
	DeliveredAt *time.Time ``

	Status    string    `gorm:"size:20;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order item persistence object
type OrderItemPO struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	OrderID   string  `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	ProductID string  `gorm:"size:64;not null"`
	Name      string  `gorm:"size:255;not null"`
	Image     string  `gorm:"size:500"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// OrderStatusPO One entry of an order's status history
type OrderStatusPO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   string    `gorm:"size:64;index;not null"`
	Status    string    `gorm:"size:20;not null"`
	Comment   string    `gorm:"size:500"`
	ActorKind string    `gorm:"size:10;not null"`
	ActorID   string    `gorm:"size:255;not null"`
	At        time.Time `gorm:"not null"`
}

// TableName Specify table name
func (OrderStatusPO) TableName() string {
	return "order_status_history"
}

// FromOrderDomain Convert domain model to persistence objects
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO, []OrderStatusPO) {
	orderPO := &OrderPO{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Email:           o.Email,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Subtotal:        o.Subtotal,
		TaxPrice:        o.TaxPrice,
		ShippingPrice:   o.ShippingPrice,
		CouponCode:      o.CouponCode,
		CouponDiscount:  o.CouponDiscount,
		Total:           o.Total,
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Guest != nil {
		orderPO.GuestName = o.Guest.Name
		orderPO.GuestEmail = o.Guest.Email
		orderPO.GuestPhone = o.Guest.Phone
	}

	itemPOs := make([]OrderItemPO, len(o.Items))
	for i, item := range o.Items {
		itemPOs[i] = OrderItemPO{
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	statusPOs := make([]OrderStatusPO, len(o.StatusHistory))
	for i, change := range o.StatusHistory {
		statusPOs[i] = OrderStatusPO{
			OrderID:   o.ID,
			Status:    string(change.Status),
			Comment:   change.Comment,
			ActorKind: string(change.UpdatedBy.Kind),
			ActorID:   change.UpdatedBy.ID,
			At:        change.At,
		}
	}

	return orderPO, itemPOs, statusPOs
}

// ToDomain Convert persistence objects to domain model
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO, statusPOs []OrderStatusPO) *order.Order {
	items := make([]order.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.Item{
			ProductID: itemPO.ProductID,
			Name:      itemPO.Name,
			Image:     itemPO.Image,
			Price:     itemPO.Price,
			Quantity:  itemPO.Quantity,
		}
	}

	history := make([]order.StatusChange, len(statusPOs))
	for i, statusPO := range statusPOs {
		history[i] = order.StatusChange{
			Status:  order.Status(statusPO.Status),
			Comment: statusPO.Comment,
			UpdatedBy: shared.Actor{
				Kind: shared.ActorKind(statusPO.ActorKind),
				ID:   statusPO.ActorID,
			},
			At: statusPO.At,
		}
	}

	o := &order.Order{
		ID:              po.ID,
		OrderNumber:     po.OrderNumber,
		UserID:          po.UserID,
		Email:           po.Email,
		Items:           items,
		ShippingAddress: po.ShippingAddress,
		PaymentMethod:   order.PaymentMethod(po.PaymentMethod),
		Subtotal:        po.Subtotal,
		TaxPrice:        po.TaxPrice,
		ShippingPrice:   po.ShippingPrice,
		CouponCode:      po.CouponCode,
		CouponDiscount:  po.CouponDiscount,
		Total:           po.Total,
		IsPaid:          po.IsPaid,
		PaidAt:          po.PaidAt,
		IsDelivered:     po.IsDelivered,
		DeliveredAt:     po.DeliveredAt,
		Status:          order.Status(po.Status),
		StatusHistory:   history,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
	if po.GuestEmail != "" && po.UserID == "" {
		o.Guest = &order.GuestDetails{
			Name:  po.GuestName,
			Email: po.GuestEmail,
			Phone: po.GuestPhone,
		}
	}
	return o
}

// OrderSequencePO Per-month order number counter row
type OrderSequencePO struct {
	Period  string `gorm:"primaryKey;size:4"` // YYMM
	Counter int64  `gorm:"not null;default:0"`
}

// TableName Specify table name
func (OrderSequencePO) TableName() string {
	return "order_sequences"
}

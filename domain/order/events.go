package order

import (
	"time"
)

// PlacedEvent is raised when an order is created.
type PlacedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id,omitempty"`
	Email       string    `json:"email"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"item_count"`
	At          time.Time `json:"at"`
}

// NewPlacedEvent builds a PlacedEvent from the order
func NewPlacedEvent(o *Order) *PlacedEvent {
	return &PlacedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Email:       o.Email,
		Total:       o.Total,
		ItemCount:   len(o.Items),
		At:          time.Now(),
	}
}

func (e *PlacedEvent) EventName() string      { return "order.placed" }
func (e *PlacedEvent) OccurredOn() time.Time  { return e.At }
func (e *PlacedEvent) GetAggregateID() string { return e.OrderID }

// StatusChangedEvent is raised on every non-cancellation status transition.
type StatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        Status    `json:"from"`
	To          Status    `json:"to"`
	At          time.Time `json:"at"`
}

// NewStatusChangedEvent builds a StatusChangedEvent
func NewStatusChangedEvent(o *Order, from, to Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        from,
		To:          to,
		At:          time.Now(),
	}
}

func (e *StatusChangedEvent) EventName() string      { return "order.status_changed" }
func (e *StatusChangedEvent) OccurredOn() time.Time  { return e.At }
func (e *StatusChangedEvent) GetAggregateID() string { return e.OrderID }

// CancelledEvent is raised when an order is cancelled.
type CancelledEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

// NewCancelledEvent builds a CancelledEvent
func NewCancelledEvent(o *Order, reason string) *CancelledEvent {
	return &CancelledEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Reason:      reason,
		At:          time.Now(),
	}
}

func (e *CancelledEvent) EventName() string      { return "order.cancelled" }
func (e *CancelledEvent) OccurredOn() time.Time  { return e.At }
func (e *CancelledEvent) GetAggregateID() string { return e.OrderID }

/*
Package notification implements the append-only per-recipient message log.

Notifications are written as side effects of order placement and status
changes; they never mutate the entity that triggered them. The recipient is a
tagged {kind, id} reference so users, admins and guests share one log.
*/
package notification

import (
	"errors"
	"time"

	"storefront/domain/shared"
)

// Kind categorizes a notification for client-side rendering.
type Kind string

const (
	KindOrderPlaced   Kind = "order_placed"
	KindOrderStatus   Kind = "order_status"
	KindOrderCancel   Kind = "order_cancelled"
	KindSystemMessage Kind = "system"
)

// Notification is one entry in a recipient's message log.
type Notification struct {
	ID        string       `json:"id"`
	Recipient shared.Actor `json:"recipient"`
	Kind      Kind         `json:"kind"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`

	// Reference points at the triggering entity (usually an order ID).
	Reference string `json:"reference,omitempty"`

	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ErrNotificationNotFound notification does not exist or belongs to another recipient
var ErrNotificationNotFound = errors.New("notification not found")

// NewNotFoundError creates a notification-not-found error with stack
func NewNotFoundError(id string) error {
	return shared.NewDomainError(ErrNotificationNotFound, "notification", "", "notification not found: "+id)
}

// New creates an unread notification
func New(id string, recipient shared.Actor, kind Kind, title, message, reference string) *Notification {
	return &Notification{
		ID:        id,
		Recipient: recipient,
		Kind:      kind,
		Title:     title,
		Message:   message,
		Reference: reference,
		CreatedAt: time.Now(),
	}
}

// MarkRead sets the read flag and timestamp. Idempotent.
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
}

// Expired reports whether the notification has passed its expiry
func (n *Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}

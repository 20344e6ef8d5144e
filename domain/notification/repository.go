package notification

import (
	"context"

	"storefront/domain/shared"
)

// Repository persists notifications.
type Repository interface {
	NextIdentity() string
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)

	// FindByRecipient returns the recipient's log, newest first, skipping
	// expired entries.
	FindByRecipient(ctx context.Context, recipient shared.Actor, unreadOnly bool) ([]*Notification, error)

	CountUnread(ctx context.Context, recipient shared.Actor) (int64, error)
	MarkAllRead(ctx context.Context, recipient shared.Actor) error
	Delete(ctx context.Context, id string) error
}

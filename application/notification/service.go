// Package notification Application Layer - per-recipient message log access.
// Reads and mutations are always scoped to the requesting actor; a
// notification addressed to someone else reads as not found.
package notification

import (
	"context"

	"storefront/domain/notification"
	"storefront/domain/shared"
)

// ApplicationService coordinates notification access
type ApplicationService struct {
	notificationRepo notification.Repository
}

// NewApplicationService Create notification application service
func NewApplicationService(notificationRepo notification.Repository) *ApplicationService {
	return &ApplicationService{notificationRepo: notificationRepo}
}

// List returns the actor's notifications, newest first, expired entries skipped
func (s *ApplicationService) List(ctx context.Context, recipient shared.Actor, unreadOnly bool) ([]*notification.Notification, error) {
	return s.notificationRepo.FindByRecipient(ctx, recipient, unreadOnly)
}

// CountUnread returns the actor's unread badge count
func (s *ApplicationService) CountUnread(ctx context.Context, recipient shared.Actor) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipient)
}

// MarkRead marks one notification read. Idempotent.
func (s *ApplicationService) MarkRead(ctx context.Context, recipient shared.Actor, id string) (*notification.Notification, error) {
	n, err := s.find(ctx, recipient, id)
	if err != nil {
		return nil, err
	}
	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks the actor's whole log read
func (s *ApplicationService) MarkAllRead(ctx context.Context, recipient shared.Actor) error {
	return s.notificationRepo.MarkAllRead(ctx, recipient)
}

// Delete removes one notification from the actor's log
func (s *ApplicationService) Delete(ctx context.Context, recipient shared.Actor, id string) error {
	if _, err := s.find(ctx, recipient, id); err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, id)
}

func (s *ApplicationService) find(ctx context.Context, recipient shared.Actor, id string) (*notification.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Recipient != recipient {
		return nil, notification.NewNotFoundError(id)
	}
	return n, nil
}

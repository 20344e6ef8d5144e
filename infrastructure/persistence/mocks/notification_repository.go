package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/domain/notification"
	"storefront/domain/shared"

	"github.com/google/uuid"
)

// NotificationRepository in-memory implementation of the notification repository
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*notification.Notification
}

// NewNotificationRepository creates an empty in-memory notification repository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]*notification.Notification)}
}

// NextIdentity generates a new notification ID
func (r *NotificationRepository) NextIdentity() string {
	return "notif-" + uuid.New().String()
}

// Save stores the notification
func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

// FindByID returns the notification or a not-found error
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, notification.NewNotFoundError(id)
	}
	clone := *n
	return &clone, nil
}

// FindByRecipient returns the recipient's log, newest first, skipping expired entries
func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipient shared.Actor, unreadOnly bool) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	var matched []*notification.Notification
	for _, n := range r.notifications {
		if n.Recipient != recipient || n.Expired(now) {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		clone := *n
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// CountUnread counts unread, unexpired notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipient shared.Actor) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	var count int64
	for _, n := range r.notifications {
		if n.Recipient == recipient && !n.IsRead && !n.Expired(now) {
			count++
		}
	}
	return count, nil
}

// MarkAllRead marks every unread notification of a recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient shared.Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.Recipient == recipient {
			n.MarkRead()
		}
	}
	return nil
}

// Delete removes the notification
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return notification.NewNotFoundError(id)
	}
	delete(r.notifications, id)
	return nil
}

// Compile-time interface implementation check
// Snapshot copies the repository state for unit of work rollback
func (r *NotificationRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneMap(r.notifications)
}

// Restore puts a snapshot back
func (r *NotificationRepository) Restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = state.(map[string]*notification.Notification)
}

var _ notification.Repository = (*NotificationRepository)(nil)

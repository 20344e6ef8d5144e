package mysql

import (
	"context"
	"errors"
	"time"

	"storefront/domain/notification"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository MySQL/GORM implementation of the notification repository
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository Create notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new notification ID
func (r *NotificationRepository) NextIdentity() string {
	return "notif-" + uuid.New().String()
}

// Save Save notification (create or update)
func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.getDB(ctx).Save(po.FromNotificationDomain(n)).Error
}

// FindByID Find notification by ID
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	var notificationPO po.NotificationPO
	if err := r.getDB(ctx).First(&notificationPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.NewNotFoundError(id)
		}
		return nil, err
	}
	return notificationPO.ToDomain(), nil
}

// FindByRecipient Return the recipient's log, newest first, skipping expired entries
func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipient shared.Actor, unreadOnly bool) ([]*notification.Notification, error) {
	db := r.getDB(ctx).
		Where("recipient_kind = ? AND recipient_id = ?", string(recipient.Kind), recipient.ID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}

	var notificationPOs []po.NotificationPO
	if err := db.Order("created_at DESC").Find(&notificationPOs).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(notificationPOs))
	for i := range notificationPOs {
		notifications[i] = notificationPOs[i].ToDomain()
	}
	return notifications, nil
}

// CountUnread Count unread, unexpired notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipient shared.Actor) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.NotificationPO{}).
		Where("recipient_kind = ? AND recipient_id = ?", string(recipient.Kind), recipient.ID).
		Where("is_read = ?", false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Count(&count).Error
	return count, err
}

// MarkAllRead Mark every unread notification of a recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient shared.Actor) error {
	now := time.Now()
	return r.getDB(ctx).Model(&po.NotificationPO{}).
		Where("recipient_kind = ? AND recipient_id = ?", string(recipient.Kind), recipient.ID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
}

// Delete Delete notification
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.NotificationPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notification.NewNotFoundError(id)
	}
	return nil
}

// Compile-time interface implementation check
var _ notification.Repository = (*NotificationRepository)(nil)

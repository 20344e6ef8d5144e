package po

import (
	"time"

	"storefront/domain/notification"
	"storefront/domain/shared"
)

// NotificationPO Notification persistence object
type NotificationPO struct {
	ID            string `gorm:"primaryKey;size:64"`
	RecipientKind string `gorm:"size:10;index:idx_notifications_recipient;not null"`
	RecipientID   string `gorm:"size:255;index:idx_notifications_recipient;not null"`
	Kind          string `gorm:"size:30;not null"`
	Title         string `gorm:"size:255;not null"`
	Message       string `gorm:"size:1000;not null"`
	Reference     string `gorm:"size:64"`

	IsRead    bool       `gorm:"not null;default:false"`
	ReadAt    *time.Time ``
	ExpiresAt *time.Time ``

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName Specify table name
func (NotificationPO) TableName() string {
	return "notifications"
}

// FromNotificationDomain Convert domain model to persistence object
func FromNotificationDomain(n *notification.Notification) *NotificationPO {
	return &NotificationPO{
		ID:            n.ID,
		RecipientKind: string(n.Recipient.Kind),
		RecipientID:   n.Recipient.ID,
		Kind:          string(n.Kind),
		Title:         n.Title,
		Message:       n.Message,
		Reference:     n.Reference,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		ExpiresAt:     n.ExpiresAt,
		CreatedAt:     n.CreatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *NotificationPO) ToDomain() *notification.Notification {
	return &notification.Notification{
		ID: po.ID,
		Recipient: shared.Actor{
			Kind: shared.ActorKind(po.RecipientKind),
			ID:   po.RecipientID,
		},
		Kind:      notification.Kind(po.Kind),
		Title:     po.Title,
		Message:   po.Message,
		Reference: po.Reference,
		IsRead:    po.IsRead,
		ReadAt:    po.ReadAt,
		ExpiresAt: po.ExpiresAt,
		CreatedAt: po.CreatedAt,
	}
}

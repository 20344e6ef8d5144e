package po

import (
	"time"

	"storefront/domain/user"
)

// UserPO User persistence object
type UserPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Role      string    `gorm:"size:20;not null;index"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "users"
}

// FromUserDomain Convert domain model to persistence object
func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:        po.ID,
		Name:      po.Name,
		Email:     po.Email,
		Role:      user.Role(po.Role),
		IsActive:  po.IsActive,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

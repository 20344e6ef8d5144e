/*
Package user holds the minimal user store the storefront core needs: auth
identities, the admin list for notification fan-out, and order history lookups
for coupon restrictions. Account management itself lives outside this module.
*/
package user

import (
	"errors"
	"time"

	"storefront/domain/shared"
)

// Role separates customers from administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ErrUserNotFound user does not exist
var ErrUserNotFound = errors.New("user not found")

// NewNotFoundError creates a user-not-found error with stack
func NewNotFoundError(id string) error {
	return shared.NewDomainError(ErrUserNotFound, "user", "", "user not found: "+id)
}

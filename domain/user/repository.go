package user

import "context"

// Repository persists users.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAdmins returns all active administrators, for notification fan-out.
	FindAdmins(ctx context.Context) ([]*User, error)

	Save(ctx context.Context, u *User) error
}

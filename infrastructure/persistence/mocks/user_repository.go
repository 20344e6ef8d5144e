package mocks

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/user"
)

// UserRepository in-memory implementation of the user repository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*user.User)}
}

// Save stores the user
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *u
	r.users[u.ID] = &clone
	return nil
}

// FindByID returns the user or user.ErrUserNotFound
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.NewNotFoundError(id)
	}
	clone := *u
	return &clone, nil
}

// FindByEmail returns the user with the given email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.NewNotFoundError(email)
}

// FindAdmins returns all active administrators
func (r *UserRepository) FindAdmins(ctx context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var admins []*user.User
	for _, u := range r.users {
		if u.IsAdmin() && u.IsActive {
			clone := *u
			admins = append(admins, &clone)
		}
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)

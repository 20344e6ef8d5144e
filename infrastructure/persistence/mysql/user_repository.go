package mysql

import (
	"context"
	"errors"

	"storefront/domain/user"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository MySQL/GORM implementation of the user repository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository Create user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO
	if err := r.getDB(ctx).First(&userPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewNotFoundError(id)
		}
		return nil, err
	}
	return userPO.ToDomain(), nil
}

// FindByEmail Find user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var userPO po.UserPO
	if err := r.getDB(ctx).First(&userPO, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewNotFoundError(email)
		}
		return nil, err
	}
	return userPO.ToDomain(), nil
}

// FindAdmins Return all active administrators
func (r *UserRepository) FindAdmins(ctx context.Context) ([]*user.User, error) {
	var userPOs []po.UserPO
	err := r.getDB(ctx).
		Where("role = ? AND is_active = ?", string(user.RoleAdmin), true).
		Find(&userPOs).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, len(userPOs))
	for i := range userPOs {
		users[i] = userPOs[i].ToDomain()
	}
	return users, nil
}

// Save Save user (create or update)
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return r.getDB(ctx).Save(po.FromUserDomain(u)).Error
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)

package mysql

import (
	"context"
	"errors"

	"storefront/domain/cart"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository MySQL/GORM implementation of the cart repository
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new cart ID
func (r *CartRepository) NextIdentity() string {
	return "cart-" + uuid.New().String()
}

// FindByUserID Find the user's cart
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var cartPO po.CartPO
	if err := r.getDB(ctx).First(&cartPO, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("cart")
		}
		return nil, err
	}
	return cartPO.ToDomain(), nil
}

// Save Save cart (create or update)
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.getDB(ctx).Save(po.FromCartDomain(c)).Error
}

// Delete Drop the user's cart entirely
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	return r.getDB(ctx).Delete(&po.CartPO{}, "user_id = ?", userID).Error
}

// Compile-time interface implementation check
var _ cart.Repository = (*CartRepository)(nil)

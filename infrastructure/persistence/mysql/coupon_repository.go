package mysql

import (
	"context"
	"errors"
	"time"

	"storefront/domain/coupon"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CouponRepository MySQL/GORM implementation of the coupon repository
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository Create coupon repository
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new coupon ID
func (r *CouponRepository) NextIdentity() string {
	return "coupon-" + uuid.New().String()
}

// Save Save coupon (create or update)
// The usage ledger is written only through RecordUsage, never through Save
func (r *CouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	if err := r.getDB(ctx).Save(po.FromCouponDomain(c)).Error; err != nil {
		if isDuplicateEntry(err) {
			return coupon.NewDuplicateCodeError(c.Code)
		}
		return err
	}
	return nil
}

// FindByID Find coupon by ID, with its usage ledger
func (r *CouponRepository) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	db := r.getDB(ctx)
	var couponPO po.CouponPO
	if err := db.First(&couponPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.NewNotFoundError(id)
		}
		return nil, err
	}
	return r.loadWithUsages(db, &couponPO)
}

// FindByCode Find coupon by normalized code, with its usage ledger
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	db := r.getDB(ctx)
	var couponPO po.CouponPO
	if err := db.First(&couponPO, "code = ?", coupon.NormalizeCode(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.NewNotFoundError(code)
		}
		return nil, err
	}
	return r.loadWithUsages(db, &couponPO)
}

func (r *CouponRepository) loadWithUsages(db *gorm.DB, couponPO *po.CouponPO) (*coupon.Coupon, error) {
	var usagePOs []po.CouponUsagePO
	if err := db.Where("coupon_id = ?", couponPO.ID).Find(&usagePOs).Error; err != nil {
		return nil, err
	}
	return couponPO.ToDomain(usagePOs), nil
}

// List Find coupons, newest first
func (r *CouponRepository) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	db := r.getDB(ctx)
	query := db.Model(&po.CouponPO{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var couponPOs []po.CouponPO
	if err := query.Order("created_at DESC").Find(&couponPOs).Error; err != nil {
		return nil, err
	}

	coupons := make([]*coupon.Coupon, len(couponPOs))
	for i := range couponPOs {
		c, err := r.loadWithUsages(db, &couponPOs[i])
		if err != nil {
			return nil, err
		}
		coupons[i] = c
	}
	return coupons, nil
}

// Delete Delete coupon and its usage ledger
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	result := db.Delete(&po.CouponPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return coupon.NewNotFoundError(id)
	}
	return db.Delete(&po.CouponUsagePO{}, "coupon_id = ?", id).Error
}

// RecordUsage Atomically bump the global counter and the user's ledger row
// Runs inside the checkout transaction; the upsert keeps concurrent checkouts
// with the same coupon correct without a read-modify-write race
func (r *CouponRepository) RecordUsage(ctx context.Context, couponID, userID string) error {
	db := r.getDB(ctx)

	result := db.Model(&po.CouponPO{}).
		Where("id = ?", couponID).
		Update("total_used", gorm.Expr("total_used + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return coupon.NewNotFoundError(couponID)
	}

	now := time.Now()
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coupon_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":        gorm.Expr("count + 1"),
			"last_used_at": now,
		}),
	}).Create(&po.CouponUsagePO{
		CouponID:   couponID,
		UserID:     userID,
		Count:      1,
		LastUsedAt: now,
	}).Error
}

// Compile-time interface implementation check
var _ coupon.Repository = (*CouponRepository)(nil)

package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/domain/order"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository MySQL/GORM implementation of the order repository
// GORM usage specification: Association features are prohibited to maintain
// aggregate boundaries; items and history are managed manually
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new order ID
func (r *OrderRepository) NextIdentity() string {
	return "order-" + uuid.New().String()
}

// NextOrderNumber Reserve the next order number for the month of now
// The per-month counter row is bumped with an atomic upsert, so concurrent
// checkouts never observe the same value
func (r *OrderRepository) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	db := r.getDB(ctx)
	period := now.Format("0601") // YYMM

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"counter": gorm.Expr("counter + 1"),
		}),
	}).Create(&po.OrderSequencePO{Period: period, Counter: 1}).Error
	if err != nil {
		return "", err
	}

	var seq po.OrderSequencePO
	if err := db.First(&seq, "period = ?", period).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%05d", period, seq.Counter), nil
}

// Save Save order (create or update)
// Note: Manually manage saving of items and history, do not use GORM associations
// When called within UoW.Execute(), it uses the transaction from context
// When called standalone, it creates its own transaction for atomicity
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs, statusPOs := po.FromOrderDomain(o)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o.ID, orderPO, itemPOs, statusPOs)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o.ID, orderPO, itemPOs, statusPOs)
	})
}

// saveWithTx performs the actual save operations within a transaction
// Child rows use a delete-then-insert strategy
func (r *OrderRepository) saveWithTx(tx *gorm.DB, orderID string, orderPO *po.OrderPO, itemPOs []po.OrderItemPO, statusPOs []po.OrderStatusPO) error {
	if err := tx.Save(orderPO).Error; err != nil {
		return err
	}

	if err := tx.Where("order_id = ?", orderID).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("order_id = ?", orderID).Delete(&po.OrderStatusPO{}).Error; err != nil {
		return err
	}
	if len(statusPOs) > 0 {
		if err := tx.Create(&statusPOs).Error; err != nil {
			return err
		}
	}

	return nil
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNumber Find order by its order number
func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return r.findOne(ctx, "order_number = ?", orderNumber)
}

func (r *OrderRepository) findOne(ctx context.Context, query string, arg string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO
	if err := db.First(&orderPO, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewNotFoundError(arg)
		}
		return nil, err
	}
	return r.loadChildren(db, &orderPO)
}

// loadChildren queries items and history manually to keep aggregate boundaries clear
func (r *OrderRepository) loadChildren(db *gorm.DB, orderPO *po.OrderPO) (*order.Order, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderPO.ID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	var statusPOs []po.OrderStatusPO
	if err := db.Where("order_id = ?", orderPO.ID).Order("id ASC").Find(&statusPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs, statusPOs), nil
}

// FindByUserID Find order list by user ID, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := r.loadChildren(db, &orderPOs[i])
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

// List Find orders matching the filter, with total count for pagination
func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&po.OrderPO{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var orderPOs []po.OrderPO
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := r.loadChildren(db, &orderPOs[i])
		if err != nil {
			return nil, 0, err
		}
		orders[i] = o
	}
	return orders, total, nil
}

// CountByUser Count how many orders a user has placed
func (r *OrderRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.OrderPO{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByUserAndProduct Count the user's orders containing the product in any
// of the given statuses
func (r *OrderRepository) CountByUserAndProduct(ctx context.Context, userID, productID string, statuses []order.Status) (int64, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	var count int64
	err := r.getDB(ctx).Model(&po.OrderPO{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Where("orders.status IN ?", statusStrings).
		Distinct("orders.id").
		Count(&count).Error
	return count, err
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)

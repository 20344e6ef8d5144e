package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/domain/order"

	"github.com/google/uuid"
)

// OrderRepository in-memory implementation of the order repository
type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]*order.Order
	counters map[string]int64 // per-month order number counters, keyed by YYMM
}

// NewOrderRepository creates an empty in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   make(map[string]*order.Order),
		counters: make(map[string]int64),
	}
}

// NextIdentity generates a new order ID
func (r *OrderRepository) NextIdentity() string {
	return "order-" + uuid.New().String()
}

// NextOrderNumber reserves the next number for the month of now
func (r *OrderRepository) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	period := now.Format("0601") // YYMM
	r.counters[period]++
	return fmt.Sprintf("%s-%05d", period, r.counters[period]), nil
}

func cloneOrder(o *order.Order) *order.Order {
	clone := *o
	clone.Items = append([]order.Item(nil), o.Items...)
	clone.StatusHistory = append([]order.StatusChange(nil), o.StatusHistory...)
	if o.Guest != nil {
		guest := *o.Guest
		clone.Guest = &guest
	}
	return &clone
}

// Save stores the order
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = cloneOrder(o)
	return nil
}

// FindByID returns the order or order.ErrOrderNotFound
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.NewNotFoundError(id)
	}
	return cloneOrder(o), nil
}

// FindByNumber returns the order with the given order number
func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return cloneOrder(o), nil
		}
	}
	return nil, order.NewNotFoundError(orderNumber)
}

// FindByUserID returns the user's orders, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			matched = append(matched, cloneOrder(o))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// List returns orders matching the filter with the pre-pagination total
func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*order.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		matched = append(matched, cloneOrder(o))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*order.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// CountByUser counts how many orders a user has placed
func (r *OrderRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, o := range r.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}

// CountByUserAndProduct counts the user's orders containing the product in
// any of the given statuses
func (r *OrderRepository) CountByUserAndProduct(ctx context.Context, userID, productID string, statuses []order.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statusSet := make(map[order.Status]bool, len(statuses))
	for _, s := range statuses {
		statusSet[s] = true
	}

	var count int64
	for _, o := range r.orders {
		if o.UserID != userID || !statusSet[o.Status] {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID {
				count++
				break
			}
		}
	}
	return count, nil
}

// Compile-time interface implementation check
type orderState struct {
	orders   map[string]*order.Order
	counters map[string]int64
}

// Snapshot copies orders and number counters for unit of work rollback
func (r *OrderRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := orderState{
		orders:   make(map[string]*order.Order, len(r.orders)),
		counters: make(map[string]int64, len(r.counters)),
	}
	for id, o := range r.orders {
		state.orders[id] = cloneOrder(o)
	}
	for period, n := range r.counters {
		state.counters[period] = n
	}
	return state
}

// Restore puts a snapshot back
func (r *OrderRepository) Restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := state.(orderState)
	r.orders = s.orders
	r.counters = s.counters
}

var _ order.Repository = (*OrderRepository)(nil)

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders []*entity.Order
	nextID int64
}

func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{nextID: 1}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	cp := *order
	cp.Items = append([]entity.CartLine(nil), order.Items...)
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *memoryOrderRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			result = append(result, &cp)
		}
	}
	newestFirst(result)
	return result, nil
}

func (r *memoryOrderRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		all = append(all, &cp)
	}
	newestFirst(all)

	total := int64(len(all))
	if offset >= len(all) {
		return []*entity.Order{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *memoryOrderRepository) Revenue(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	for _, o := range r.orders {
		sum += o.Total
	}
	return entity.RoundCents(sum), nil
}

// newestFirst sorts by creation time, breaking ties by id so orders placed
// within the same clock tick keep a stable order.
func newestFirst(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

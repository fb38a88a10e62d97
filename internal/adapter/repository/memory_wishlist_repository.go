package repository

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type memoryWishlistRepository struct {
	mu    sync.RWMutex
	items []*entity.WishlistItem
}

func NewMemoryWishlistRepository() repository.WishlistRepository {
	return &memoryWishlistRepository{}
}

func (r *memoryWishlistRepository) Add(ctx context.Context, userID, productID int64) (*entity.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(userID, productID) >= 0 {
		return nil, errors.BadRequest("Product already in wishlist", nil)
	}
	item := &entity.WishlistItem{UserID: userID, ProductID: productID, AddedAt: time.Now()}
	r.items = append(r.items, item)
	cp := *item
	return &cp, nil
}

func (r *memoryWishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, productID)
	if i < 0 {
		return errors.NotFound("Item in wishlist", nil)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memoryWishlistRepository) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(userID, productID) >= 0, nil
}

func (r *memoryWishlistRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.WishlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memoryWishlistRepository) indexOf(userID, productID int64) int {
	for i, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			return i
		}
	}
	return -1
}

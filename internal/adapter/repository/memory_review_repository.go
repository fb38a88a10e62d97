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

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []*entity.Review
	nextID  int64
}

func NewMemoryReviewRepository() repository.ReviewRepository {
	return &memoryReviewRepository{nextID: 1}
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = r.nextID
	r.nextID++
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	cp := *review
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *memoryReviewRepository) GetByProductAndUser(ctx context.Context, productID, userID int64) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memoryReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			cp := *rv
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

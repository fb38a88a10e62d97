package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*entity.Product
	nextID   int64
}

func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		products: make(map[int64]*entity.Product),
		nextID:   1,
	}
}

func (r *memoryProductRepository) List(ctx context.Context, category string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p *entity.Product) bool {
		return category == "" || p.Category == category
	}), nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	cp := *product
	return &cp, nil
}

func (r *memoryProductRepository) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}), nil
}

func (r *memoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.products {
		seen[p.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *memoryProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *memoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if _, exists := r.products[product.ID]; exists {
		return errors.Conflict(fmt.Sprintf("Product %d already exists", product.ID))
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memoryProductRepository) DecrementStock(ctx context.Context, items []entity.CartLine) ([]entity.StockChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate everything first so a failure leaves stock untouched
	for _, item := range items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return nil, errors.NotFound(fmt.Sprintf("Product %d", item.ProductID), nil)
		}
		if product.Stock < item.Quantity {
			return nil, errors.BadRequest(fmt.Sprintf("Insufficient stock for %s", product.Name), nil)
		}
	}

	changes := make([]entity.StockChange, 0, len(items))
	for _, item := range items {
		product := r.products[item.ProductID]
		product.Stock -= item.Quantity
		changes = append(changes, entity.StockChange{ProductID: product.ID, Stock: product.Stock})
	}
	return changes, nil
}

func (r *memoryProductRepository) RestoreStock(ctx context.Context, items []entity.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if product, ok := r.products[item.ProductID]; ok {
			product.Stock += item.Quantity
		}
	}
	return nil
}

func (r *memoryProductRepository) UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.Rating = rating
	product.ReviewsCount = reviewsCount
	return nil
}

// collect must be called with r.mu held.
func (r *memoryProductRepository) collect(match func(*entity.Product) bool) []*entity.Product {
	result := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if match(p) {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type ProductRepository interface {
	// List returns the catalog ordered by id; an empty category means all.
	List(ctx context.Context, category string) ([]*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// Search matches query case-insensitively against name or description.
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *entity.Product) error
	// DecrementStock atomically removes the quantities of every line or
	// none of them.
	DecrementStock(ctx context.Context, items []entity.CartLine) ([]entity.StockChange, error)
	// RestoreStock puts back quantities taken by DecrementStock.
	RestoreStock(ctx context.Context, items []entity.CartLine) error
	UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error
}

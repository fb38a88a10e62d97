package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// ListByUser and ListAll return orders newest first.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error)
	Revenue(ctx context.Context) (float64, error)
}

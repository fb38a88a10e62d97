package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByProductAndUser(ctx context.Context, productID, userID int64) (*entity.Review, error)
	// ListByProduct returns reviews newest first.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error)
}

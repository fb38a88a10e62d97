package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

type TokenIssuer interface {
	Issue(userID int64, role string) (string, error)
	Verify(token string) (int64, string, error)
}

// CatalogNotifier pushes catalog changes to connected storefront clients.
type CatalogNotifier interface {
	PublishStockChanged(ctx context.Context, changes []entity.StockChange) error
	PublishRatingChanged(ctx context.Context, productID int64) error
}

type noopNotifier struct{}

func (noopNotifier) PublishStockChanged(context.Context, []entity.StockChange) error { return nil }
func (noopNotifier) PublishRatingChanged(context.Context, int64) error { return nil }

package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/repository"
	"storefront/internal/domain/entity"
	domainrepo "storefront/internal/domain/repository"
)

type recordingNotifier struct {
	mu      sync.Mutex
	stock   [][]entity.StockChange
	ratings []int64
}

func (n *recordingNotifier) PublishStockChanged(_ context.Context, changes []entity.StockChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stock = append(n.stock, changes)
	return nil
}

func (n *recordingNotifier) PublishRatingChanged(_ context.Context, productID int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ratings = append(n.ratings, productID)
	return nil
}

func seededProducts(t *testing.T) domainrepo.ProductRepository {
	t.Helper()
	repo := repository.NewMemoryProductRepository()
	n, err := NewProductUseCase(repo).SeedIfEmpty(context.Background(), repository.DemoProducts())
	require.NoError(t, err)
	require.Equal(t, 6, n)
	return repo
}

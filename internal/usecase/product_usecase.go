package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, strings.TrimSpace(category))
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.BadRequest("Search query is required", nil)
	}
	return uc.productRepo.Search(ctx, query)
}

func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.productRepo.Categories(ctx)
}

// SeedIfEmpty loads products into an empty catalog and reports how many
// were inserted.
func (uc *ProductUseCase) SeedIfEmpty(ctx context.Context, products []*entity.Product) (int, error) {
	count, err := uc.productRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, p := range products {
		if err := uc.productRepo.Create(ctx, p); err != nil {
			return 0, err
		}
	}
	log.Printf("Seeded catalog with %d products", len(products))
	return len(products), nil
}

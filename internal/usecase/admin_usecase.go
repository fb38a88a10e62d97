package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

type AdminUseCase struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (uc *AdminUseCase) Stats(ctx context.Context) (*entity.Stats, error) {
	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	_, orders, err := uc.orderRepo.ListAll(ctx, 1, 0)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.orderRepo.Revenue(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.Stats{
		TotalUsers:    users,
		TotalOrders:   orders,
		TotalRevenue:  entity.RoundCents(revenue),
		TotalProducts: products,
	}, nil
}

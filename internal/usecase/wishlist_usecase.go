package usecase

import (
	"context"
	"log"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (u *WishlistUseCase) AddToWishlist(ctx context.Context, userID, productID int64) (*entity.WishlistItem, error) {
	log.Printf("Adding product %d to wishlist for user %d", productID, userID)

	if _, err := u.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	return u.wishlistRepo.Add(ctx, userID, productID)
}

func (u *WishlistUseCase) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	log.Printf("Removing product %d from wishlist for user %d", productID, userID)

	return u.wishlistRepo.Remove(ctx, userID, productID)
}

// GetUserWishlist expands each entry with its product. Entries whose product
// no longer exists are skipped.
func (u *WishlistUseCase) GetUserWishlist(ctx context.Context, userID int64) ([]entity.WishlistProduct, error) {
	items, err := u.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]entity.WishlistProduct, 0, len(items))
	for _, item := range items {
		product, err := u.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, entity.WishlistProduct{
			Product: *product,
			AddedAt: item.AddedAt,
		})
	}

	return result, nil
}

func (u *WishlistUseCase) IsInWishlist(ctx context.Context, userID, productID int64) (bool, error) {
	return u.wishlistRepo.Contains(ctx, userID, productID)
}

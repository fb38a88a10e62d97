package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type WishlistRepository interface {
	// Add product to user's wishlist
	Add(ctx context.Context, userID, productID int64) (*entity.WishlistItem, error)

	// Remove product from user's wishlist
	Remove(ctx context.Context, userID, productID int64) error

	// Check if product is in user's wishlist
	Contains(ctx context.Context, userID, productID int64) (bool, error)

	// List user's wishlist entries in insertion order
	ListByUser(ctx context.Context, userID int64) ([]*entity.WishlistItem, error)
}

package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/entity"
)

func (c *Client) ListWishlist(ctx context.Context, userID int64) ([]entity.WishlistProduct, error) {
	var items []entity.WishlistProduct
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/wishlist/%d", userID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddToWishlist(ctx context.Context, userID, productID int64) error {
	body := map[string]int64{
		"user_id":    userID,
		"product_id": productID,
	}
	return c.do(ctx, http.MethodPost, "/api/wishlist", body, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d/%d", userID, productID), nil, nil)
}

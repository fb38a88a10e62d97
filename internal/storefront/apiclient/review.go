package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/entity"
)

type ReviewRequest struct {
	ProductID int64  `json:"product_id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (c *Client) CreateReview(ctx context.Context, review ReviewRequest) (*entity.Review, error) {
	var created entity.Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/product/%d", productID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

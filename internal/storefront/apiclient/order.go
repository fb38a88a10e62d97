package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/entity"
)

// OrderRequest is what checkout submits. Total is informational; the
// server prices the order itself.
type OrderRequest struct {
	UserID          int64             `json:"user_id"`
	Items           []entity.CartLine `json:"items"`
	Total           float64           `json:"total"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	ShippingAddress string            `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
}

func (c *Client) SubmitOrder(ctx context.Context, order OrderRequest) (*entity.Order, error) {
	var created entity.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/domain/entity"
)

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsByCategory asks the server to filter; an empty category lists
// everything.
func (c *Client) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	path := "/api/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/search/"+escape(query), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var body struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &body); err != nil {
		return nil, err
	}
	return body.Categories, nil
}

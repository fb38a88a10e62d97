package apiclient

import (
	"context"
	"net/http"

	"storefront/internal/domain/entity"
)

type LoginResult struct {
	User  entity.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var resp struct {
		User entity.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

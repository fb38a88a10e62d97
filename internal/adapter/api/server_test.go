package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "storefront/internal/adapter/repository"
	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/token"
	"storefront/internal/usecase"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t     *testing.T
	e     *echo.Echo
	repos Repositories
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := MemoryRepositories()
	_, err := usecase.NewProductUseCase(repos.Products).SeedIfEmpty(context.Background(), adapterrepo.DemoProducts())
	require.NoError(t, err)

	e, stop := NewServer(repos, Options{
		Tokens:           token.NewJWTIssuer("test-secret", 3600),
		AuthRateLimit:    100,
		GeneralRateLimit: 1000,
		Quiet:            true,
	})
	t.Cleanup(stop)

	return &testServer{t: t, e: e, repos: repos}
}

func (s *testServer) do(method, path, bearer string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

// signup registers and logs in a customer, returning its id and token.
func (s *testServer) signup(name, email string) (int64, string) {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "secret1",
	})
	require.Equal(s.t, http.StatusOK, code)

	var login struct {
		Token string       `json:"token"`
		User  *entity.User `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(s.t, login.Token)
	return login.User.ID, login.Token
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/products?category=Electronics", "", nil)
	require.Equal(t, http.StatusOK, code)
	var products []entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "Electronics", p.Category)
	}

	code, env = s.do(http.MethodGet, "/api/products/search/YOGA", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Yoga Mat", products[0].Name)

	code, env = s.do(http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Error.Message)

	code, env = s.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, code)
	var categories map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Contains(t, categories["categories"], "Electronics")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	s.signup("Ann", "ann@example.com")
	code, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "ANN@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", env.Error.Message)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Error.Message)
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	uid, bearer := s.signup("Ann", "ann@example.com")
	otherID, otherBearer := s.signup("Bob", "bob@example.com")

	order := map[string]interface{}{
		"user_id":          uid,
		"items":            []map[string]int64{{"product_id": 1, "quantity": 2}},
		"customer_name":    "Ann",
		"customer_email":   "ann@example.com",
		"shipping_address": "1 Main St",
		"total":            0.01,
	}

	code, _ := s.do(http.MethodPost, "/api/orders", "", order)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/api/orders", otherBearer, order)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/orders", bearer, order)
	require.Equal(t, http.StatusCreated, code, env.Error)
	var created entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 199.98, created.Total)
	assert.Equal(t, entity.DefaultPaymentMethod, created.PaymentMethod)
	assert.Equal(t, entity.OrderStatusPending, created.Status)

	product, err := s.repos.Products.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 48, product.Stock)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), otherBearer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/orders/user/%d", uid), bearer, nil)
	require.Equal(t, http.StatusOK, code)
	var history []entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/orders/user/%d", uid), otherBearer, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/orders/user/%d", otherID), otherBearer, nil)
	assert.Equal(t, http.StatusOK, code)

	order["items"] = []map[string]int64{{"product_id": 1, "quantity": 1000}}
	code, env = s.do(http.MethodPost, "/api/orders", bearer, order)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Insufficient stock for Wireless Headphones", env.Error.Message)
}

func TestWishlistAndReviews(t *testing.T) {
	s := newTestServer(t)
	uid, bearer := s.signup("Ann", "ann@example.com")

	add := map[string]int64{"user_id": uid, "product_id": 3}
	code, _ := s.do(http.MethodPost, "/api/wishlist", bearer, add)
	require.Equal(t, http.StatusCreated, code)
	code, env := s.do(http.MethodPost, "/api/wishlist", bearer, add)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product already in wishlist", env.Error.Message)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/wishlist/%d", uid), bearer, nil)
	require.Equal(t, http.StatusOK, code)
	var items []entity.WishlistProduct
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/wishlist/%d/3", uid), bearer, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/wishlist/%d/3", uid), bearer, nil)
	assert.Equal(t, http.StatusNotFound, code)

	review := map[string]interface{}{
		"product_id": 3, "user_id": uid, "user_name": "Ann", "rating": 6, "comment": "great",
	}
	code, env = s.do(http.MethodPost, "/api/reviews", bearer, review)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	review["rating"] = 5
	code, _ = s.do(http.MethodPost, "/api/reviews", bearer, review)
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/api/reviews/product/3", "", nil)
	require.Equal(t, http.StatusOK, code)
	var reviews []entity.Review
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "great", reviews[0].Comment)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	_, bearer := s.signup("Ann", "ann@example.com")

	code, _ := s.do(http.MethodGet, "/api/admin/stats", bearer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	ctx := context.Background()
	admin := &entity.User{Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin}
	require.NoError(t, s.repos.Users.Create(ctx, admin))
	adminToken, err := token.NewJWTIssuer("test-secret", 3600).Issue(admin.ID, entity.RoleAdmin)
	require.NoError(t, err)

	code, env := s.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var stats entity.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(len(adapterrepo.DemoProducts())), stats.TotalProducts)

	code, _ = s.do(http.MethodGet, "/api/admin/orders?page=1&limit=5", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

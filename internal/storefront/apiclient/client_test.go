package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/api"
	adapterrepo "storefront/internal/adapter/repository"
	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/token"
	"storefront/internal/infrastructure/websocket"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
)

// newAPI runs the real server on in-memory repositories.
func newAPI(t *testing.T) (*Client, *websocket.Manager) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	repos := api.MemoryRepositories()
	_, err := usecase.NewProductUseCase(repos.Products).SeedIfEmpty(ctx, adapterrepo.DemoProducts())
	require.NoError(t, err)

	hub := websocket.NewManager()
	hub.Start(ctx)

	e, stop := api.NewServer(repos, api.Options{
		Tokens:           token.NewJWTIssuer("test-secret", 3600),
		Hub:              hub,
		AuthRateLimit:    100,
		GeneralRateLimit: 1000,
		Quiet:            true,
	})
	t.Cleanup(stop)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second), hub
}

func login(t *testing.T, c *Client) *LoginResult {
	t.Helper()
	ctx := context.Background()
	_, err := c.Register(ctx, "Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	result, err := c.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	c.SetToken(result.Token)
	return result
}

func TestCatalog(t *testing.T) {
	c, _ := newAPI(t)
	ctx := context.Background()

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(adapterrepo.DemoProducts()))

	sports, err := c.ListProductsByCategory(ctx, "Sports")
	require.NoError(t, err)
	for _, p := range sports {
		assert.Equal(t, "Sports", p.Category)
	}

	found, err := c.SearchProducts(ctx, "coffee maker")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Coffee Maker", found[0].Name)

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Sports")

	_, err = c.GetProduct(ctx, 404)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, http.StatusNotFound, errors.StatusOf(err))
}

func TestAuthErrorsCarryServerMessage(t *testing.T) {
	c, _ := newAPI(t)
	ctx := context.Background()
	login(t, c)

	_, err := c.Register(ctx, "Ann", "ann@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "Email already registered", errors.MessageOf(err))

	_, err = c.Login(ctx, "ann@example.com", "nope-nope")
	assert.Equal(t, http.StatusUnauthorized, errors.StatusOf(err))
}

func TestOrdersWishlistReviews(t *testing.T) {
	c, _ := newAPI(t)
	ctx := context.Background()
	user := login(t, c).User

	order, err := c.SubmitOrder(ctx, OrderRequest{
		UserID:          user.ID,
		Items:           []entity.CartLine{{ProductID: 5, Quantity: 2}},
		Total:           99.98,
		CustomerName:    "Ann",
		CustomerEmail:   "ann@example.com",
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, 99.98, order.Total)

	orders, err := c.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	require.NoError(t, c.AddToWishlist(ctx, user.ID, 2))
	items, err := c.ListWishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Smart Watch", items[0].Name)
	require.NoError(t, c.RemoveFromWishlist(ctx, user.ID, 2))

	_, err = c.CreateReview(ctx, ReviewRequest{ProductID: 5, UserID: user.ID, UserName: "Ann", Rating: 4, Comment: "roomy"})
	require.NoError(t, err)
	reviews, err := c.ListReviews(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
}

func TestNetworkFailureIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListProducts(context.Background())
	assert.True(t, errors.Is(err, errors.CodeRemote))
	assert.Equal(t, "Network error. Please check your connection.", errors.MessageOf(err))
}

func TestNonEnvelopeErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).ListProducts(context.Background())
	assert.True(t, errors.Is(err, errors.CodeRemote))
	assert.Equal(t, http.StatusBadGateway, errors.StatusOf(err))
}

func TestWatchCatalog(t *testing.T) {
	c, hub := newAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan entity.CatalogEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.WatchCatalog(ctx, func(event entity.CatalogEvent) {
			events <- event
		})
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, hub.PublishStockChanged(ctx, []entity.StockChange{{ProductID: 1, Stock: 7}}))

	select {
	case event := <-events:
		assert.Equal(t, entity.CatalogEventStockChanged, event.Type)
		assert.Equal(t, []entity.StockChange{{ProductID: 1, Stock: 7}}, event.Changes)
	case <-time.After(2 * time.Second):
		t.Fatal("no catalog event received")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchCatalog did not return after cancel")
	}
}

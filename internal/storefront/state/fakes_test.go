package state

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/apiclient"
	"storefront/internal/storefront/storage"
	"storefront/pkg/errors"
)

type discardLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *discardLogger) Printf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *discardLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

type fakeCatalog struct {
	mu          sync.Mutex
	products    []entity.Product
	err         error
	searchCalls int
	// gate, when set, blocks ListProducts/SearchProducts until a value
	// arrives, so tests can interleave calls.
	gate chan struct{}
}

func (f *fakeCatalog) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]entity.Product, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Product
	q := strings.ToLower(query)
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeCatalog) setStock(id int64, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Stock = stock
		}
	}
}

type fakeAuth struct {
	users    map[string]entity.User
	nextID   int64
	password map[string]string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]entity.User{}, password: map[string]string{}, nextID: 1}
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, errors.BadRequest("Email already registered", nil)
	}
	user := entity.User{ID: f.nextID, Name: name, Email: email}
	f.nextID++
	f.users[email] = user
	f.password[email] = password
	return &user, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error) {
	user, ok := f.users[email]
	if !ok || f.password[email] != password {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}
	return &apiclient.LoginResult{User: user, Token: fmt.Sprintf("token-%d", user.ID)}, nil
}

type fakeTokens struct {
	token string
}

func (f *fakeTokens) SetToken(token string) { f.token = token }

type fakeWishlist struct {
	catalog *fakeCatalog
	items   map[int64][]int64
	err     error
}

func (f *fakeWishlist) ListWishlist(ctx context.Context, userID int64) ([]entity.WishlistProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.WishlistProduct
	for _, id := range f.items[userID] {
		for _, p := range f.catalog.products {
			if p.ID == id {
				out = append(out, entity.WishlistProduct{Product: p})
			}
		}
	}
	return out, nil
}

func (f *fakeWishlist) AddToWishlist(ctx context.Context, userID, productID int64) error {
	if f.err != nil {
		return f.err
	}
	f.items[userID] = append(f.items[userID], productID)
	return nil
}

func (f *fakeWishlist) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	if f.err != nil {
		return f.err
	}
	ids := f.items[userID]
	for i, id := range ids {
		if id == productID {
			f.items[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Item in wishlist", nil)
}

type fakeOrders struct {
	submitted []apiclient.OrderRequest
	err       error
	catalog   *fakeCatalog
}

func (f *fakeOrders) SubmitOrder(ctx context.Context, order apiclient.OrderRequest) (*entity.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = append(f.submitted, order)
	for _, line := range order.Items {
		for _, p := range f.catalog.products {
			if p.ID == line.ProductID {
				f.catalog.setStock(p.ID, p.Stock-line.Quantity)
			}
		}
	}
	return &entity.Order{ID: int64(len(f.submitted)), UserID: order.UserID, Items: order.Items, Total: order.Total}, nil
}

func (f *fakeOrders) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	var out []entity.Order
	for i := len(f.submitted) - 1; i >= 0; i-- {
		if f.submitted[i].UserID == userID {
			out = append(out, entity.Order{ID: int64(i + 1), UserID: userID})
		}
	}
	return out, nil
}

func demoCatalog() []entity.Product {
	return []entity.Product{
		{ID: 42, Name: "Desk Lamp", Description: "Warm LED lamp", Price: 19.99, Stock: 3, Category: "Home"},
		{ID: 7, Name: "Yoga Mat", Description: "Non-slip mat", Price: 29.99, Stock: 10, Category: "Sports"},
		{ID: 8, Name: "Sold Out Sneakers", Description: "Gone", Price: 59.99, Stock: 0, Category: "Sports"},
		{ID: 9, Name: "Running Shoes", Description: "Light trainers", Price: 79.99, Stock: 100, Category: "Sports", Discount: 20},
	}
}

type fixture struct {
	catalog *fakeCatalog
	store   *storage.MemoryStore
	log     *discardLogger
	m       *Manager
}

func newFixture() *fixture {
	catalog := &fakeCatalog{products: demoCatalog()}
	store := storage.NewMemoryStore()
	log := &discardLogger{}
	return &fixture{
		catalog: catalog,
		store:   store,
		log:     log,
		m:       NewManager(catalog, store, log),
	}
}

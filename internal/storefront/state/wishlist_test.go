package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/errors"
)

func loggedInWishlist(t *testing.T) (*fixture, *Wishlist, *fakeWishlist) {
	t.Helper()
	f, s, _, _ := newSession(t)
	ctx := context.Background()
	_, err := s.Register(ctx, RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	_, err = s.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)

	svc := &fakeWishlist{catalog: f.catalog, items: map[int64][]int64{}}
	return f, NewWishlist(svc, s, f.m), svc
}

func TestWishlistRequiresLogin(t *testing.T) {
	f, s, _, _ := newSession(t)
	w := NewWishlist(&fakeWishlist{catalog: f.catalog, items: map[int64][]int64{}}, s, f.m)

	err := w.Load(context.Background())
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	assert.Equal(t, "Please login to use the wishlist", errors.MessageOf(err))
}

func TestWishlistToggle(t *testing.T) {
	_, w, _ := loggedInWishlist(t)
	ctx := context.Background()

	added, err := w.Toggle(ctx, 7)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, w.Contains(7))
	require.Len(t, w.Items(), 1)
	assert.Equal(t, "Yoga Mat", w.Items()[0].Name)

	added, err = w.Toggle(ctx, 7)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, w.Contains(7))
	assert.Empty(t, w.Items())
}

func TestWishlistToggleFailureKeepsState(t *testing.T) {
	_, w, svc := loggedInWishlist(t)
	ctx := context.Background()
	_, err := w.Toggle(ctx, 7)
	require.NoError(t, err)

	svc.err = errors.Remote("Network error. Please check your connection.", nil)
	_, err = w.Toggle(ctx, 7)
	assert.True(t, errors.Is(err, errors.CodeRemote))
	assert.True(t, w.Contains(7))
}

func TestMoveToCart(t *testing.T) {
	f, w, _ := loggedInWishlist(t)
	ctx := context.Background()
	_, err := w.Toggle(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, w.MoveToCart(ctx, 42))
	assert.False(t, w.Contains(42))
	assert.Equal(t, 1, quantities(f.m.Lines())[42])
}

func TestMoveToCartAtCapacityKeepsWishlist(t *testing.T) {
	f, w, _ := loggedInWishlist(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.m.AddItem(42))
	}
	_, err := w.Toggle(ctx, 42)
	require.NoError(t, err)

	err = w.MoveToCart(ctx, 42)
	assert.True(t, errors.Is(err, errors.CodeStockExceeded))
	assert.True(t, w.Contains(42))
}

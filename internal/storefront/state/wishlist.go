package state

import (
	"context"
	"sync"

	"storefront/internal/domain/entity"
)

type WishlistService interface {
	ListWishlist(ctx context.Context, userID int64) ([]entity.WishlistProduct, error)
	AddToWishlist(ctx context.Context, userID, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID, productID int64) error
}

// Wishlist mirrors the logged-in user's server-side wishlist. The server
// is the authority; every change is followed by a reload.
type Wishlist struct {
	svc     WishlistService
	session *Session
	cart    *Manager

	mu     sync.RWMutex
	items  []entity.WishlistProduct
	ids    map[int64]bool
	loaded bool
}

func NewWishlist(svc WishlistService, session *Session, cart *Manager) *Wishlist {
	return &Wishlist{
		svc:     svc,
		session: session,
		cart:    cart,
		ids:     make(map[int64]bool),
	}
}

func (w *Wishlist) Load(ctx context.Context) error {
	user, err := w.session.requireUser("use the wishlist")
	if err != nil {
		return err
	}

	items, err := w.svc.ListWishlist(ctx, user.ID)
	if err != nil {
		return err
	}

	ids := make(map[int64]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}

	w.mu.Lock()
	w.items = items
	w.ids = ids
	w.loaded = true
	w.mu.Unlock()
	return nil
}

func (w *Wishlist) Contains(productID int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ids[productID]
}

func (w *Wishlist) Items() []entity.WishlistProduct {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]entity.WishlistProduct, len(w.items))
	copy(out, w.items)
	return out
}

// Toggle removes the product when it is wishlisted and adds it otherwise.
// It reports whether the product ended up on the wishlist.
func (w *Wishlist) Toggle(ctx context.Context, productID int64) (bool, error) {
	user, err := w.session.requireUser("use the wishlist")
	if err != nil {
		return false, err
	}

	w.mu.RLock()
	loaded := w.loaded
	w.mu.RUnlock()
	if !loaded {
		if err := w.Load(ctx); err != nil {
			return false, err
		}
	}

	present := w.Contains(productID)
	if present {
		err = w.svc.RemoveFromWishlist(ctx, user.ID, productID)
	} else {
		err = w.svc.AddToWishlist(ctx, user.ID, productID)
	}
	if err != nil {
		return present, err
	}

	if err := w.Load(ctx); err != nil {
		return !present, err
	}
	return !present, nil
}

// MoveToCart adds the product to the cart and then takes it off the
// wishlist. A capacity error stops before the wishlist is touched.
func (w *Wishlist) MoveToCart(ctx context.Context, productID int64) error {
	if err := w.cart.AddItem(productID); err != nil {
		return err
	}

	if !w.Contains(productID) {
		return nil
	}
	_, err := w.Toggle(ctx, productID)
	return err
}

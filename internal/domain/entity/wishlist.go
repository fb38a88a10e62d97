package entity

import (
	"time"
)

type WishlistItem struct {
	UserID    int64     `json:"user_id" firestore:"userId"`
	ProductID int64     `json:"product_id" firestore:"productId"`
	AddedAt   time.Time `json:"added_at" firestore:"addedAt"`
}

// WishlistProduct is a wishlist entry expanded with its product.
type WishlistProduct struct {
	Product
	AddedAt time.Time `json:"added_at"`
}
